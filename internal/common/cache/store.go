// Package cache keeps the problem catalog between runs so listing does not
// hit the judge every time.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/pkg/errors"
)

const (
	// Version is bumped whenever the stored layout changes. Entries written
	// by another version are discarded.
	Version = 1

	DefaultExpireDays = 7
)

// ProblemListStore persists the problem catalog.
type ProblemListStore interface {
	// Load returns the catalog and true, or false when nothing usable is
	// stored. Expired or incompatible entries are deleted.
	Load(ctx context.Context) ([]model.Problem, bool, error)
	// Save stores the catalog and restarts the retention window.
	Save(ctx context.Context, problems []model.Problem) error
	Delete(ctx context.Context) error
}

// envelope is the stored form of the catalog.
type envelope struct {
	Version     int             `json:"version"`
	ExpiredAt   time.Time       `json:"expired_at"`
	ProblemList []model.Problem `json:"problem_list"`
}

// Clock lets tests move time.
type Clock func() time.Time

func retention(days int) time.Duration {
	if days <= 0 {
		days = DefaultExpireDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func newEnvelope(problems []model.Problem, now time.Time, days int) envelope {
	if problems == nil {
		problems = []model.Problem{}
	}
	return envelope{
		Version:     Version,
		ExpiredAt:   now.Add(retention(days)),
		ProblemList: problems,
	}
}

// check returns a CacheExpired error when the envelope was written by
// another version or its retention ended before now.
func (e envelope) check(now time.Time) error {
	switch {
	case e.Version != Version:
		return errors.New(errors.CacheExpired).
			WithMessage("problem list cache written by another version").
			WithDetail("version", e.Version)
	case e.ExpiredAt.Before(now):
		return errors.New(errors.CacheExpired).
			WithDetail("expired_at", e.ExpiredAt)
	}
	return nil
}

func encodeEnvelope(e envelope) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CacheError, "encode problem list failed: %v", err)
	}
	return data, nil
}

func decodeEnvelope(data []byte) (envelope, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return e, errors.Wrapf(err, errors.CacheError, "decode problem list failed: %v", err)
	}
	return e, nil
}
