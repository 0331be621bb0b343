package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/wanglun/leetcode.vim/internal/cli/config"
	"github.com/wanglun/leetcode.vim/internal/cli/state"
	"github.com/wanglun/leetcode.vim/internal/common/cache"
	"github.com/wanglun/leetcode.vim/internal/judge/client"
	"github.com/wanglun/leetcode.vim/internal/judge/service"
	"github.com/wanglun/leetcode.vim/internal/judge/session"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"go.uber.org/zap"
)

// App holds what the commands share across one process: configuration, the
// judge session and the backend built on top of it. Everything is created
// on first use so that help and flag errors never touch the network.
type App struct {
	ConfigPath string
	EnvFile    string
	Compact    bool
	Out        io.Writer

	// Backend and Auth may be set ahead of time to bypass bootstrap.
	Backend Backend
	Auth    Authenticator

	cfg       config.Config
	creds     config.Credentials
	closers   []io.Closer
	bootstrap bool
}

// NewApp creates an App writing results to out.
func NewApp(out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{Out: out}
}

func (a *App) init(ctx context.Context) error {
	if a.bootstrap {
		return nil
	}
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logger); err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	var envFiles []string
	if a.EnvFile != "" {
		envFiles = append(envFiles, a.EnvFile)
	}
	creds, err := config.LoadCredentials(envFiles...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.creds = creds

	if a.Backend == nil || a.Auth == nil {
		sess, err := session.New(session.NewEndpoints(cfg.BaseURL), cfg.Timeout)
		if err != nil {
			return err
		}
		if err := a.restoreSession(ctx, sess); err != nil {
			return err
		}
		if a.Auth == nil {
			a.Auth = sess
		}
		if a.Backend == nil {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			manager, err := service.NewManager(service.Config{
				API:   client.New(sess),
				Store: store,
				Poll:  cfg.Poll,
			})
			if err != nil {
				return err
			}
			a.Backend = manager
		}
	}
	a.bootstrap = true
	return nil
}

// restoreSession installs cookies from the state file, falling back to the
// environment.
func (a *App) restoreSession(ctx context.Context, sess *session.Session) error {
	st, err := state.Load(a.cfg.SessionStatePath)
	if err != nil {
		return err
	}
	switch {
	case !st.Empty():
		sess.SetCookies(st.Session, st.CSRFToken)
	case a.creds.HasSession():
		sess.SetCookies(a.creds.Session, a.creds.CSRFToken)
	default:
		logger.Debug(ctx, "no stored session", zap.String("path", a.cfg.SessionStatePath))
	}
	return nil
}

func (a *App) openStore() (cache.ProblemListStore, error) {
	switch a.cfg.Cache.Backend {
	case config.BackendRedis:
		store, err := cache.NewRedisStore(&a.cfg.Cache.Redis, a.cfg.Cache.ExpireDays)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		return store, nil
	case config.BackendFile:
		return cache.NewFileStore(a.cfg.Cache.Path, a.cfg.Cache.ExpireDays), nil
	default:
		return nil, nil
	}
}

// Close releases connections opened during bootstrap.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	_ = logger.Sync()
	return first
}

func (a *App) print(v interface{}) error {
	enc := json.NewEncoder(a.Out)
	enc.SetEscapeHTML(false)
	if !a.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// login signs in with username and password and stores the new cookies.
func (a *App) login(ctx context.Context, username, password string) error {
	if username == "" {
		username = a.creds.Username
	}
	if password == "" {
		password = a.creds.Password
	}
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required, set %s and %s or pass flags",
			config.EnvUsername, config.EnvPassword)
	}
	if err := a.Auth.Login(ctx, username, password); err != nil {
		return err
	}
	sessionID, csrf := a.Auth.Cookies()
	if err := state.Save(a.cfg.SessionStatePath, state.SessionState{
		Session:   sessionID,
		CSRFToken: csrf,
		Username:  username,
	}); err != nil {
		return err
	}
	logger.Info(ctx, "logged in", zap.String("username", username))
	return a.print(map[string]interface{}{"username": username, "logged_in": true})
}

func (a *App) logout() error {
	if err := state.Clear(a.cfg.SessionStatePath); err != nil {
		return err
	}
	return a.print(map[string]interface{}{"logged_in": false})
}
