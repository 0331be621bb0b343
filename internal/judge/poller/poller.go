// Package poller waits for judge jobs by checking them repeatedly.
package poller

import (
	"context"
	"time"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/pkg/errors"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultInterval   = time.Second
	DefaultMaxRetries = 30
)

// Config controls the delay between checks and how many retries are made
// after the first check.
type Config struct {
	Interval time.Duration `yaml:"interval"`
	// MaxInterval caps the doubling delay. Zero keeps the delay at Interval.
	MaxInterval time.Duration `yaml:"maxInterval"`
	MaxRetries  int           `yaml:"maxRetries"`
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxInterval < c.Interval {
		c.MaxInterval = c.Interval
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
}

// Checker performs one check of a job. *client.Client implements it.
type Checker interface {
	PollTest(ctx context.Context, testID string) (model.PollResult[model.TestResult], error)
	PollSubmission(ctx context.Context, submissionID string) (model.PollResult[model.SubmissionResult], error)
}

// Poller waits for jobs through a Checker.
type Poller struct {
	checker Checker
	cfg     Config
}

// New creates a poller. Zero config fields take defaults, except MaxRetries
// where zero means a single check.
func New(checker Checker, cfg Config) *Poller {
	cfg.applyDefaults()
	return &Poller{checker: checker, cfg: cfg}
}

// WaitTest blocks until the test job finishes.
func (p *Poller) WaitTest(ctx context.Context, testID string) (model.TestResult, error) {
	return wait(ctx, p.cfg, testID, p.checker.PollTest)
}

// WaitSubmission blocks until the submission is judged.
func (p *Poller) WaitSubmission(ctx context.Context, submissionID string) (model.SubmissionResult, error) {
	return wait(ctx, p.cfg, submissionID, p.checker.PollSubmission)
}

// WaitTestJob waits for both halves of a test run at once. The first failure
// cancels the other wait.
func (p *Poller) WaitTestJob(ctx context.Context, job model.TestJob) (actual, expected model.TestResult, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actual, err = p.WaitTest(gctx, job.ActualID)
		return err
	})
	g.Go(func() error {
		var err error
		expected, err = p.WaitTest(gctx, job.ExpectedID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.TestResult{}, model.TestResult{}, err
	}
	return actual, expected, nil
}

func wait[T any](ctx context.Context, cfg Config, id string, check func(context.Context, string) (model.PollResult[T], error)) (T, error) {
	var zero T
	for retry := 0; ; retry++ {
		poll, err := check(ctx, id)
		if err != nil {
			return zero, err
		}
		switch poll.State {
		case model.JobFinished:
			return poll.Result, nil
		case model.JobPending, model.JobStarted:
			logger.Debug(ctx, "judge job still running", zap.String("id", id), zap.String("state", string(poll.State)), zap.Int("retry", retry))
		}
		if retry >= cfg.MaxRetries {
			return zero, errors.New(errors.PollTimeout).
				WithDetail("id", id).
				WithDetail("checks", retry+1)
		}
		if err := sleep(ctx, Backoff(retry, cfg.Interval, cfg.MaxInterval)); err != nil {
			return zero, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff doubles base for each retry, capped at max. A non-positive max
// leaves the delay unbounded.
func Backoff(retry int, base, max time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 0; i < retry; i++ {
		if max > 0 && delay > max/2 {
			return max
		}
		delay *= 2
	}
	if max > 0 && delay > max {
		return max
	}
	return delay
}
