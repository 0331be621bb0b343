// Package client implements the judge operations on top of a session.
// Every call is one synchronous round trip; polling is left to the caller.
package client

import (
	"context"
	"net/http"

	"github.com/wanglun/leetcode.vim/internal/judge/extract"
	"github.com/wanglun/leetcode.vim/internal/judge/mapper"
	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/internal/judge/session"
	"github.com/wanglun/leetcode.vim/pkg/errors"
	"github.com/wanglun/leetcode.vim/pkg/utils/contextkey"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transport sends one authenticated request. *session.Session implements it.
type Transport interface {
	Do(ctx context.Context, r session.Request) (session.ResponseInfo, error)
}

// Client talks to one judge site through one session.
type Client struct {
	transport Transport
	endpoints session.Endpoints
}

// New creates a client bound to s.
func New(s *session.Session) *Client {
	return NewWithTransport(s, s.Endpoints())
}

// NewWithTransport creates a client over any transport.
func NewWithTransport(t Transport, endpoints session.Endpoints) *Client {
	return &Client{transport: t, endpoints: endpoints}
}

const (
	opListProblems      = "list_problems"
	opGetProblem        = "get_problem"
	opGetSubmissionList = "get_submission_list"
	opGetSubmission     = "get_submission"
	opTestCode          = "test_code"
	opSubmitCode        = "submit_code"
	opPollTest          = "poll_test"
	opPollSubmission    = "poll_submission"
)

func withOperation(ctx context.Context, op, subject string) context.Context {
	if _, ok := ctx.Value(contextkey.TraceID).(string); !ok {
		ctx = context.WithValue(ctx, contextkey.TraceID, uuid.NewString())
	}
	ctx = context.WithValue(ctx, contextkey.Operation, op)
	return context.WithValue(ctx, contextkey.Subject, subject)
}

// fail turns a transport or decode error into an operation failure. A
// missing session is reported as is.
func fail(ctx context.Context, err error, code errors.ErrorCode, op, subject string) error {
	if errors.IsNotAuthenticated(err) {
		return err
	}
	logger.Error(ctx, "judge operation failed", zap.Error(err))
	return errors.Failure(code, op, subject).WithCause(err)
}

func failStatus(ctx context.Context, status int, code errors.ErrorCode, op, subject string) error {
	logger.Warn(ctx, "unexpected judge status", zap.Int("status", status))
	return errors.Failure(code, op, subject).WithDetail("status", status)
}

// ListProblems returns every visible problem in the catalog.
func (c *Client) ListProblems(ctx context.Context) ([]model.Problem, error) {
	ctx = withOperation(ctx, opListProblems, "")
	resp, err := c.transport.Do(ctx, session.Request{Method: http.MethodGet, URL: c.endpoints.ProblemList()})
	if err != nil {
		return nil, fail(ctx, err, errors.ProblemListFailed, opListProblems, "")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, failStatus(ctx, resp.StatusCode, errors.ProblemListFailed, opListProblems, "")
	}
	problems, err := mapper.Problems(resp.Body)
	if err != nil {
		return nil, fail(ctx, err, errors.ProblemListFailed, opListProblems, "")
	}
	logger.Debug(ctx, "problem list fetched", zap.Int("count", len(problems)))
	return problems, nil
}

// GetProblem returns the statement and code templates of one problem.
func (c *Client) GetProblem(ctx context.Context, titleSlug string) (model.ProblemDetail, error) {
	ctx = withOperation(ctx, opGetProblem, titleSlug)
	resp, err := c.transport.Do(ctx, session.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.GraphQL(),
		Referer: c.endpoints.ProblemDescription(titleSlug),
		JSON: graphQLRequest{
			OperationName: "questionData",
			Variables:     questionVariables{TitleSlug: titleSlug},
			Query:         questionDataQuery,
		},
	})
	if err != nil {
		return model.ProblemDetail{}, fail(ctx, err, errors.ProblemFetchFailed, opGetProblem, titleSlug)
	}
	if resp.StatusCode != http.StatusOK {
		return model.ProblemDetail{}, failStatus(ctx, resp.StatusCode, errors.ProblemFetchFailed, opGetProblem, titleSlug)
	}
	detail, err := mapper.ProblemDetail(resp.Body)
	if err != nil {
		return model.ProblemDetail{}, fail(ctx, err, errors.ProblemFetchFailed, opGetProblem, titleSlug)
	}
	return detail, nil
}

// GetSubmissionList returns the caller's recent submissions to a problem.
func (c *Client) GetSubmissionList(ctx context.Context, titleSlug string) ([]model.Submission, error) {
	ctx = withOperation(ctx, opGetSubmissionList, titleSlug)
	resp, err := c.transport.Do(ctx, session.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.GraphQL(),
		Referer: c.endpoints.SubmissionReferer(titleSlug),
		JSON: graphQLRequest{
			OperationName: "Submissions",
			Variables: submissionsVariables{
				Offset:       0,
				Limit:        submissionListLimit,
				QuestionSlug: titleSlug,
			},
			Query: submissionsQuery,
		},
	})
	if err != nil {
		return nil, fail(ctx, err, errors.SubmissionListFailed, opGetSubmissionList, titleSlug)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, failStatus(ctx, resp.StatusCode, errors.SubmissionListFailed, opGetSubmissionList, titleSlug)
	}
	submissions, err := mapper.Submissions(resp.Body)
	if err != nil {
		return nil, fail(ctx, err, errors.SubmissionListFailed, opGetSubmissionList, titleSlug)
	}
	return submissions, nil
}

// GetSubmission reads a past submission from its legacy detail page.
func (c *Client) GetSubmission(ctx context.Context, submissionID string) (model.SubmissionDetail, error) {
	ctx = withOperation(ctx, opGetSubmission, submissionID)
	resp, err := c.transport.Do(ctx, session.Request{Method: http.MethodGet, URL: c.endpoints.Submission(submissionID)})
	if err != nil {
		return model.SubmissionDetail{}, fail(ctx, err, errors.SubmissionFetchFailed, opGetSubmission, submissionID)
	}
	if resp.StatusCode != http.StatusOK {
		return model.SubmissionDetail{}, failStatus(ctx, resp.StatusCode, errors.SubmissionFetchFailed, opGetSubmission, submissionID)
	}
	detail, err := extract.SubmissionPage(submissionID, string(resp.Body))
	if err != nil {
		return model.SubmissionDetail{}, fail(ctx, err, errors.SubmissionFetchFailed, opGetSubmission, submissionID)
	}
	return detail, nil
}

// TestCode runs code against custom input. The judge answers with two jobs:
// one for the caller's code and one for the reference solution.
func (c *Client) TestCode(ctx context.Context, req model.SubmissionRequest) (model.TestJob, error) {
	ctx = withOperation(ctx, opTestCode, req.TitleSlug)
	resp, err := c.transport.Do(ctx, session.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.Test(req.TitleSlug),
		Referer: c.endpoints.ProblemDescription(req.TitleSlug),
		JSON: testRequest{
			DataInput:  req.DataInput,
			Lang:       req.Lang,
			QuestionID: req.ProblemID,
			JudgeType:  "small",
			TypedCode:  req.Code,
		},
	})
	if err != nil {
		return model.TestJob{}, fail(ctx, err, errors.TestCodeFailed, opTestCode, req.TitleSlug)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		logger.Warn(ctx, "judge rate limited")
		return model.TestJob{}, errors.TooFast(opTestCode, req.TitleSlug)
	}
	if resp.StatusCode != http.StatusOK {
		return model.TestJob{}, failStatus(ctx, resp.StatusCode, errors.TestCodeFailed, opTestCode, req.TitleSlug)
	}
	job, err := mapper.TestJob(resp.Body)
	if err != nil {
		return model.TestJob{}, fail(ctx, err, errors.TestCodeFailed, opTestCode, req.TitleSlug)
	}
	logger.Debug(ctx, "test job created", zap.String("actual_id", job.ActualID), zap.String("expected_id", job.ExpectedID))
	return job, nil
}

// SubmitCode submits code for judging and returns the submission id.
func (c *Client) SubmitCode(ctx context.Context, req model.SubmissionRequest) (string, error) {
	ctx = withOperation(ctx, opSubmitCode, req.TitleSlug)
	resp, err := c.transport.Do(ctx, session.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.Submit(req.TitleSlug),
		Referer: c.endpoints.ProblemDescription(req.TitleSlug),
		JSON: submitRequest{
			Lang:       req.Lang,
			QuestionID: req.ProblemID,
			TypedCode:  req.Code,
		},
	})
	if err != nil {
		return "", fail(ctx, err, errors.SubmitCodeFailed, opSubmitCode, req.TitleSlug)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		logger.Warn(ctx, "judge rate limited")
		return "", errors.TooFast(opSubmitCode, req.TitleSlug)
	}
	if resp.StatusCode != http.StatusOK {
		return "", failStatus(ctx, resp.StatusCode, errors.SubmitCodeFailed, opSubmitCode, req.TitleSlug)
	}
	id, err := mapper.SubmissionID(resp.Body)
	if err != nil {
		return "", fail(ctx, err, errors.SubmitCodeFailed, opSubmitCode, req.TitleSlug)
	}
	logger.Debug(ctx, "submission created", zap.String("submission_id", id))
	return id, nil
}

func (c *Client) check(ctx context.Context, op, id string) ([]byte, error) {
	resp, err := c.transport.Do(ctx, session.Request{Method: http.MethodGet, URL: c.endpoints.Check(id)})
	if err != nil {
		return nil, fail(ctx, err, errors.ResultRetrieveFailed, op, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, failStatus(ctx, resp.StatusCode, errors.ResultRetrieveFailed, op, id)
	}
	return resp.Body, nil
}

// PollTest checks a test job once.
func (c *Client) PollTest(ctx context.Context, testID string) (model.PollResult[model.TestResult], error) {
	ctx = withOperation(ctx, opPollTest, testID)
	body, err := c.check(ctx, opPollTest, testID)
	if err != nil {
		return model.PollResult[model.TestResult]{}, err
	}
	result, err := mapper.TestCheck(body)
	if err != nil {
		return model.PollResult[model.TestResult]{}, fail(ctx, err, errors.ResultRetrieveFailed, opPollTest, testID)
	}
	return result, nil
}

// PollSubmission checks a submission once.
func (c *Client) PollSubmission(ctx context.Context, submissionID string) (model.PollResult[model.SubmissionResult], error) {
	ctx = withOperation(ctx, opPollSubmission, submissionID)
	body, err := c.check(ctx, opPollSubmission, submissionID)
	if err != nil {
		return model.PollResult[model.SubmissionResult]{}, err
	}
	result, err := mapper.SubmissionCheck(body)
	if err != nil {
		return model.PollResult[model.SubmissionResult]{}, fail(ctx, err, errors.ResultRetrieveFailed, opPollSubmission, submissionID)
	}
	return result, nil
}
