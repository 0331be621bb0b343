package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/pkg/errors"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultRedisKey holds the catalog envelope.
const DefaultRedisKey = "leetcode:problem_list"

// RedisConfig holds the configuration for the Redis backed store.
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	Key          string        `yaml:"key"`
	MaxRetries   int           `yaml:"maxRetries"`
	DialTimeout  time.Duration `yaml:"dialTimeout"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	PoolSize     int           `yaml:"poolSize"`
}

// DefaultRedisConfig returns a RedisConfig with sensible defaults.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Key:          DefaultRedisKey,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     2,
	}
}

// RedisStore keeps the catalog envelope under one key. The key TTL matches
// the envelope expiry so Redis drops stale catalogs on its own.
type RedisStore struct {
	client     *redis.Client
	key        string
	expireDays int
	now        Clock
}

// NewRedisStore connects with config and verifies the server answers.
func NewRedisStore(config *RedisConfig, expireDays int) (*RedisStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Addr == "" {
		return nil, fmt.Errorf("addr cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolSize:     config.PoolSize,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisStoreWithClient(client, config.Key, expireDays)
}

// NewRedisStoreWithClient wraps an existing client. An empty key selects
// DefaultRedisKey.
func NewRedisStoreWithClient(client *redis.Client, key string, expireDays int) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, expireDays: expireDays, now: time.Now}, nil
}

// WithClock replaces the time source.
func (s *RedisStore) WithClock(now Clock) *RedisStore {
	s.now = now
	return s
}

func (s *RedisStore) Load(ctx context.Context) ([]model.Problem, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.CacheError, "redis get failed: %v", err)
	}
	e, err := decodeEnvelope(data)
	if err != nil {
		logger.Error(ctx, "decode problem list cache failed", zap.String("key", s.key), zap.Error(err))
		return nil, false, s.Delete(ctx)
	}
	if err := e.check(s.now()); err != nil {
		logger.Info(ctx, "problem list cache discarded", zap.String("key", s.key), zap.Error(err))
		return nil, false, s.Delete(ctx)
	}
	return e.ProblemList, true, nil
}

func (s *RedisStore) Save(ctx context.Context, problems []model.Problem) error {
	data, err := encodeEnvelope(newEnvelope(problems, s.now(), s.expireDays))
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, retention(s.expireDays)).Err(); err != nil {
		return errors.Wrapf(err, errors.CacheError, "redis set failed: %v", err)
	}
	logger.Debug(ctx, "problem list cached", zap.String("key", s.key), zap.Int("count", len(problems)))
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Wrapf(err, errors.CacheError, "redis del failed: %v", err)
	}
	return nil
}

// Close releases the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
