package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
)

// Backend is the judge surface the commands drive. *service.Manager
// implements it.
type Backend interface {
	ProblemList(ctx context.Context) ([]model.Problem, error)
	RefreshProblemList(ctx context.Context) ([]model.Problem, error)
	ClearProblemList(ctx context.Context) error
	GetProblem(ctx context.Context, titleSlug string) (model.ProblemDetail, error)
	GetSubmissionList(ctx context.Context, titleSlug string) ([]model.Submission, error)
	GetSubmission(ctx context.Context, submissionID string) (model.SubmissionDetail, error)
	TestCode(ctx context.Context, req model.SubmissionRequest) (model.TestJob, error)
	SubmitCode(ctx context.Context, req model.SubmissionRequest) (string, error)
	CheckTest(ctx context.Context, testID string) (model.PollResult[model.TestResult], error)
	CheckSubmission(ctx context.Context, submissionID string) (model.PollResult[model.SubmissionResult], error)
	WaitTest(ctx context.Context, testID string) (model.TestResult, error)
	WaitTestJob(ctx context.Context, job model.TestJob) (actual, expected model.TestResult, err error)
	WaitSubmission(ctx context.Context, submissionID string) (model.SubmissionResult, error)
}

// Authenticator logs in and exposes the resulting cookies. *session.Session
// implements it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
	Cookies() (sessionID, csrfToken string)
}

// ParseStringList splits a comma separated flag value, dropping blanks.
func ParseStringList(value string) []string {
	raw := strings.Split(value, ",")
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// ReadFile returns the content of path as a string.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file failed: %w", err)
	}
	return string(data), nil
}

// filterProblems keeps problems whose difficulty and state are in the given
// lists. An empty list matches everything.
func filterProblems(problems []model.Problem, difficulties, states []string) []model.Problem {
	if len(difficulties) == 0 && len(states) == 0 {
		return problems
	}
	match := func(value string, allowed []string) bool {
		if len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if strings.EqualFold(a, value) {
				return true
			}
		}
		return false
	}
	out := make([]model.Problem, 0, len(problems))
	for _, p := range problems {
		if match(string(p.Difficulty), difficulties) && match(string(p.State), states) {
			out = append(out, p)
		}
	}
	return out
}
