// Package session owns the authenticated HTTP state used to talk to the
// judge: the cookie jar, the CSRF token and the headers every request needs.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/wanglun/leetcode.vim/pkg/errors"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	CSRFCookie    = "csrftoken"
	SessionCookie = "LEETCODE_SESSION"

	// DefaultTimeout bounds one request round trip.
	DefaultTimeout = 30 * time.Second
)

// Request describes one judge request.
type Request struct {
	Method string
	URL    string
	// Referer overrides the base URL referer.
	Referer string
	// JSON is encoded as the request body when set.
	JSON interface{}
}

// ResponseInfo carries response details.
type ResponseInfo struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Session is one logged-in identity. It is safe to share between goroutines
// but two Sessions never share cookies.
type Session struct {
	endpoints  Endpoints
	base       *url.URL
	jar        http.CookieJar
	client     *http.Client
	noRedirect *http.Client
}

// New creates a session with an empty cookie jar.
func New(endpoints Endpoints, timeout time.Duration) (*Session, error) {
	base, err := url.Parse(endpoints.Base())
	if err != nil {
		return nil, fmt.Errorf("parse base url failed: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar failed: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Session{
		endpoints: endpoints,
		base:      base,
		jar:       jar,
		client:    &http.Client{Jar: jar, Timeout: timeout},
		noRedirect: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Endpoints returns the URL builder this session talks to.
func (s *Session) Endpoints() Endpoints {
	return s.endpoints
}

// SetCookies installs a session obtained elsewhere, e.g. from a browser.
func (s *Session) SetCookies(sessionID, csrfToken string) {
	var cookies []*http.Cookie
	if sessionID != "" {
		cookies = append(cookies, &http.Cookie{Name: SessionCookie, Value: sessionID, Path: "/"})
	}
	if csrfToken != "" {
		cookies = append(cookies, &http.Cookie{Name: CSRFCookie, Value: csrfToken, Path: "/"})
	}
	if len(cookies) > 0 {
		s.jar.SetCookies(s.base, cookies)
	}
}

// Cookies returns the current session id and CSRF token, empty when unset.
func (s *Session) Cookies() (sessionID, csrfToken string) {
	for _, c := range s.jar.Cookies(s.base) {
		switch c.Name {
		case SessionCookie:
			sessionID = c.Value
		case CSRFCookie:
			csrfToken = c.Value
		}
	}
	return sessionID, csrfToken
}

// CSRFToken returns the token or a NotAuthenticated error.
func (s *Session) CSRFToken() (string, error) {
	_, token := s.Cookies()
	if token == "" {
		return "", errors.NotAuthenticatedError()
	}
	return token, nil
}

// Do sends an authenticated request. It fails with NotAuthenticated before
// any I/O when the session has no CSRF token.
func (s *Session) Do(ctx context.Context, r Request) (ResponseInfo, error) {
	var info ResponseInfo
	token, err := s.CSRFToken()
	if err != nil {
		return info, err
	}

	var body io.Reader
	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return info, fmt.Errorf("encode request body failed: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return info, fmt.Errorf("build request failed: %w", err)
	}
	referer := r.Referer
	if referer == "" {
		referer = s.endpoints.Base()
	}
	req.Header.Set("Origin", s.endpoints.Base())
	req.Header.Set("Referer", referer)
	req.Header.Set("X-CSRFToken", token)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Info(ctx, "judge request", zap.String("method", r.Method), zap.String("url", r.URL), zap.String("referer", referer))
	if r.JSON != nil {
		logger.Debug(ctx, "judge request body", zap.Any("body", r.JSON))
	}
	return s.send(ctx, s.client, req)
}

func (s *Session) send(ctx context.Context, client *http.Client, req *http.Request) (ResponseInfo, error) {
	var info ResponseInfo
	start := time.Now()
	resp, err := client.Do(req)
	info.Duration = time.Since(start)
	if err != nil {
		return info, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	info.StatusCode = resp.StatusCode
	info.Headers = resp.Header
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, fmt.Errorf("read response body failed: %w", err)
	}
	info.Body = data

	logger.Info(ctx, "judge response", zap.Int("status", info.StatusCode), zap.Duration("duration", info.Duration))
	logger.Debug(ctx, "judge response body", zap.ByteString("body", info.Body))
	return info, nil
}

// Login signs in with a username and password. The login page sets the CSRF
// cookie; a successful form post answers with a redirect, which is not
// followed.
func (s *Session) Login(ctx context.Context, username, password string) error {
	loginURL := s.endpoints.Login()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginURL, nil)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	page, err := s.send(ctx, s.client, req)
	if err != nil {
		return errors.New(errors.LoginPageUnavailable).WithCause(err)
	}
	if page.StatusCode != http.StatusOK {
		logger.Error(ctx, "login page unavailable", zap.Int("status", page.StatusCode))
		return errors.New(errors.LoginPageUnavailable).WithDetail("status", page.StatusCode)
	}
	_, token := s.Cookies()
	if token == "" {
		return errors.New(errors.LoginPageUnavailable).WithDetail("reason", "no csrf cookie")
	}

	form := url.Values{
		"csrfmiddlewaretoken": {token},
		"login":               {username},
		"password":            {password},
	}
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", s.endpoints.Base())
	req.Header.Set("Referer", loginURL)

	logger.Info(ctx, "login request", zap.String("url", loginURL), zap.String("username", username))
	resp, err := s.send(ctx, s.noRedirect, req)
	if err != nil {
		return errors.New(errors.LoginFailed).WithCause(err)
	}
	if resp.StatusCode != http.StatusFound {
		return errors.New(errors.LoginFailed).WithDetail("status", resp.StatusCode)
	}
	return nil
}
