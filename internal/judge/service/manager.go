// Package service ties the judge client to the problem list cache and the
// result poller.
package service

import (
	"context"
	"fmt"

	"github.com/wanglun/leetcode.vim/internal/common/cache"
	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/internal/judge/poller"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"go.uber.org/zap"
)

// JudgeAPI is the set of judge operations the manager relies on.
type JudgeAPI interface {
	poller.Checker
	ListProblems(ctx context.Context) ([]model.Problem, error)
	GetProblem(ctx context.Context, titleSlug string) (model.ProblemDetail, error)
	GetSubmissionList(ctx context.Context, titleSlug string) ([]model.Submission, error)
	GetSubmission(ctx context.Context, submissionID string) (model.SubmissionDetail, error)
	TestCode(ctx context.Context, req model.SubmissionRequest) (model.TestJob, error)
	SubmitCode(ctx context.Context, req model.SubmissionRequest) (string, error)
}

// Manager serves judge operations, answering catalog reads from the cache
// when it holds a fresh copy.
type Manager struct {
	api    JudgeAPI
	store  cache.ProblemListStore
	poller *poller.Poller
}

// Config holds manager dependencies and settings.
type Config struct {
	API JudgeAPI
	// Store may be nil, in which case every listing goes to the judge.
	Store cache.ProblemListStore
	Poll  poller.Config
}

// NewManager creates a manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.API == nil {
		return nil, fmt.Errorf("judge api is required")
	}
	return &Manager{
		api:    cfg.API,
		store:  cfg.Store,
		poller: poller.New(cfg.API, cfg.Poll),
	}, nil
}

// ProblemList returns the cached catalog when present, otherwise fetches and
// caches it. A failing cache never fails the listing.
func (m *Manager) ProblemList(ctx context.Context) ([]model.Problem, error) {
	if m.store != nil {
		problems, ok, err := m.store.Load(ctx)
		if err != nil {
			logger.Warn(ctx, "load problem list cache failed", zap.Error(err))
		} else if ok {
			logger.Debug(ctx, "problem list served from cache", zap.Int("count", len(problems)))
			return problems, nil
		}
	}
	return m.RefreshProblemList(ctx)
}

// RefreshProblemList fetches the catalog and replaces the cached copy.
func (m *Manager) RefreshProblemList(ctx context.Context) ([]model.Problem, error) {
	problems, err := m.api.ListProblems(ctx)
	if err != nil {
		return nil, err
	}
	if m.store != nil {
		if err := m.store.Save(ctx, problems); err != nil {
			logger.Warn(ctx, "save problem list cache failed", zap.Error(err))
		}
	}
	return problems, nil
}

// ClearProblemList drops the cached catalog.
func (m *Manager) ClearProblemList(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	return m.store.Delete(ctx)
}

func (m *Manager) GetProblem(ctx context.Context, titleSlug string) (model.ProblemDetail, error) {
	return m.api.GetProblem(ctx, titleSlug)
}

func (m *Manager) GetSubmissionList(ctx context.Context, titleSlug string) ([]model.Submission, error) {
	return m.api.GetSubmissionList(ctx, titleSlug)
}

func (m *Manager) GetSubmission(ctx context.Context, submissionID string) (model.SubmissionDetail, error) {
	return m.api.GetSubmission(ctx, submissionID)
}

func (m *Manager) TestCode(ctx context.Context, req model.SubmissionRequest) (model.TestJob, error) {
	return m.api.TestCode(ctx, req)
}

func (m *Manager) SubmitCode(ctx context.Context, req model.SubmissionRequest) (string, error) {
	return m.api.SubmitCode(ctx, req)
}

// CheckTest performs a single check of a test job.
func (m *Manager) CheckTest(ctx context.Context, testID string) (model.PollResult[model.TestResult], error) {
	return m.api.PollTest(ctx, testID)
}

// CheckSubmission performs a single check of a submission.
func (m *Manager) CheckSubmission(ctx context.Context, submissionID string) (model.PollResult[model.SubmissionResult], error) {
	return m.api.PollSubmission(ctx, submissionID)
}

// WaitTestJob polls both runs of a test job until they finish.
func (m *Manager) WaitTestJob(ctx context.Context, job model.TestJob) (actual, expected model.TestResult, err error) {
	return m.poller.WaitTestJob(ctx, job)
}

// WaitTest polls one test run until it finishes.
func (m *Manager) WaitTest(ctx context.Context, testID string) (model.TestResult, error) {
	return m.poller.WaitTest(ctx, testID)
}

// WaitSubmission polls a submission until judging finishes.
func (m *Manager) WaitSubmission(ctx context.Context, submissionID string) (model.SubmissionResult, error) {
	return m.poller.WaitSubmission(ctx, submissionID)
}
