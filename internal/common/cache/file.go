package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/pkg/errors"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// FileStore keeps the catalog in one zstd-compressed JSON file.
type FileStore struct {
	path       string
	expireDays int
	now        Clock
}

// NewFileStore creates a file store. expireDays <= 0 selects DefaultExpireDays.
func NewFileStore(path string, expireDays int) *FileStore {
	return &FileStore{path: path, expireDays: expireDays, now: time.Now}
}

// WithClock replaces the time source.
func (s *FileStore) WithClock(now Clock) *FileStore {
	s.now = now
	return s
}

func (s *FileStore) Load(ctx context.Context) ([]model.Problem, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		logger.Error(ctx, "read problem list cache failed", zap.String("path", s.path), zap.Error(err))
		return nil, false, nil
	}

	data, err := decompress(raw)
	if err != nil {
		logger.Error(ctx, "decompress problem list cache failed, deleted",
			zap.String("path", s.path), zap.Error(errors.Wrap(err, errors.CacheError)))
		return nil, false, s.Delete(ctx)
	}
	e, err := decodeEnvelope(data)
	if err != nil {
		logger.Error(ctx, "decode problem list cache failed, deleted", zap.String("path", s.path), zap.Error(err))
		return nil, false, s.Delete(ctx)
	}
	if err := e.check(s.now()); err != nil {
		logger.Info(ctx, "problem list cache discarded", zap.String("path", s.path), zap.Error(err))
		return nil, false, s.Delete(ctx)
	}
	return e.ProblemList, true, nil
}

func (s *FileStore) Save(ctx context.Context, problems []model.Problem) error {
	data, err := encodeEnvelope(newEnvelope(problems, s.now(), s.expireDays))
	if err != nil {
		return err
	}
	compressed, err := compress(data)
	if err != nil {
		return errors.Wrapf(err, errors.CacheError, "compress problem list failed: %v", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.CacheError, "create cache dir failed: %v", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, errors.CacheError, "create cache file failed: %v", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(compressed); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.CacheError, "write cache file failed: %v", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.CacheError, "close cache file failed: %v", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.CacheError, "replace cache file failed: %v", err)
	}
	logger.Debug(ctx, "problem list cached", zap.String("path", s.path), zap.Int("count", len(problems)))
	return nil
}

func (s *FileStore) Delete(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.CacheError, "remove cache file failed: %v", err)
	}
	return nil
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}
