// Package config loads CLI settings from a YAML or TOML file and login
// credentials from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wanglun/leetcode.vim/internal/common/cache"
	"github.com/wanglun/leetcode.vim/internal/judge/poller"
	"github.com/wanglun/leetcode.vim/internal/judge/session"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout = session.DefaultTimeout

	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"

	appDir = "leetcode"
)

// Environment variables read by LoadCredentials.
const (
	EnvUsername  = "LEETCODE_USERNAME"
	EnvPassword  = "LEETCODE_PASSWORD"
	EnvSession   = "LEETCODE_SESSION"
	EnvCSRFToken = "LEETCODE_CSRFTOKEN"
)

// Config holds CLI configuration.
type Config struct {
	BaseURL          string        `yaml:"baseURL"`
	Timeout          time.Duration `yaml:"timeout"`
	SessionStatePath string        `yaml:"sessionStatePath"`
	Logger           logger.Config `yaml:"logger"`
	Cache            CacheConfig   `yaml:"cache"`
	Poll             poller.Config `yaml:"poll"`
}

// CacheConfig selects where the problem list is kept.
type CacheConfig struct {
	Backend    string            `yaml:"backend"`
	Path       string            `yaml:"path"`
	ExpireDays int               `yaml:"expireDays"`
	Redis      cache.RedisConfig `yaml:"redis"`
}

// Credentials are the login inputs taken from the environment.
type Credentials struct {
	Username  string
	Password  string
	Session   string
	CSRFToken string
}

// HasSession reports whether both session cookies were supplied.
func (c Credentials) HasSession() bool {
	return c.Session != "" && c.CSRFToken != ""
}

// HasLogin reports whether a username and password were supplied.
func (c Credentials) HasLogin() bool {
	return c.Username != "" && c.Password != ""
}

// Default returns the configuration used for keys a file leaves out.
func Default() Config {
	cfg := Config{
		Cache: CacheConfig{Redis: *cache.DefaultRedisConfig()},
		Poll: poller.Config{
			Interval:   poller.DefaultInterval,
			MaxRetries: poller.DefaultMaxRetries,
		},
	}
	applyDefaults(&cfg)
	return cfg
}

// Load reads path on top of Default. Files ending in .toml are parsed as
// TOML, anything else as YAML. A missing file yields the defaults. Keys
// present in the file win, so poll.maxRetries: 0 asks for a single check.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("read config file failed: %w", err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file failed: %w", err)
			}
		}
	}
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decode fills cfg from data. TOML is read into a generic tree and handed
// to the YAML decoder, so both formats share one set of keys and accept
// durations written as "10s".
func decode(path string, data []byte, cfg *Config) error {
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return yaml.Unmarshal(data, cfg)
	}
	var tree map[string]interface{}
	if err := toml.Unmarshal(data, &tree); err != nil {
		return err
	}
	normalized, err := yaml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("convert toml failed: %w", err)
	}
	return yaml.Unmarshal(normalized, cfg)
}

// applyDefaults fills settings that cannot be meaningfully empty.
func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = session.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SessionStatePath == "" {
		cfg.SessionStatePath = filepath.Join(userDir(os.UserConfigDir), "session.json")
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "warn"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "console"
	}
	if cfg.Logger.OutputPath == "" {
		cfg.Logger.OutputPath = "stderr"
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = BackendFile
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(userDir(os.UserCacheDir), "problems.zst")
	}
	if cfg.Cache.ExpireDays <= 0 {
		cfg.Cache.ExpireDays = cache.DefaultExpireDays
	}
	if cfg.Cache.Redis.Key == "" {
		cfg.Cache.Redis.Key = cache.DefaultRedisKey
	}
	if cfg.Poll.Interval <= 0 {
		cfg.Poll.Interval = poller.DefaultInterval
	}
}

func validate(cfg Config) error {
	switch cfg.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if cfg.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
	return nil
}

func userDir(base func() (string, error)) string {
	dir, err := base()
	if err != nil || dir == "" {
		return filepath.Join(".", "."+appDir)
	}
	return filepath.Join(dir, appDir)
}

// LoadCredentials reads credentials from the environment after loading the
// given dotenv files. Missing files are skipped and variables already set in
// the environment win over file values.
func LoadCredentials(envFiles ...string) (Credentials, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Credentials{}, fmt.Errorf("load env file %s failed: %w", file, err)
		}
	}
	return Credentials{
		Username:  os.Getenv(EnvUsername),
		Password:  os.Getenv(EnvPassword),
		Session:   os.Getenv(EnvSession),
		CSRFToken: os.Getenv(EnvCSRFToken),
	}, nil
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(userDir(os.UserConfigDir), "config.yaml")
}
