// Package client is the Go SDK for the CollegeVaani auth service. It
// keeps one session cache per application, synchronized with the server
// through the same cookie-based endpoints the web frontend uses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"go.uber.org/zap"
)

// User mirrors the user object the server returns in its envelope.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Avatar     string `json:"avatar,omitempty"`
	IsVerified bool   `json:"isVerified"`
}

// Session is the cached authentication state. It is a convenience for
// UI gating only; the server re-verifies every privileged request.
type Session struct {
	User            *User
	IsAuthenticated bool
}

type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message,omitempty"`
	Error        string          `json:"error,omitempty"`
	Code         string          `json:"code,omitempty"`
	User         *User           `json:"user,omitempty"`
	AccessToken  string          `json:"accessToken,omitempty"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// APIError is a server-rejected request. Message carries the server's
// wording verbatim so forms can surface it unchanged.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client owns the session cache. Create exactly one per application;
// independent instances would let their caches diverge.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	probeMu sync.Mutex
	mu      sync.Mutex
	session Session
	loading bool
}

type Option func(*Client)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		logger:  zap.NewNop(),
		loading: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		c.http.Jar = jar
	}

	return c, nil
}

// Bootstrap runs the startup auth probe: ask the server who the cookies
// belong to, and on failure attempt exactly one silent refresh before
// concluding "not authenticated". Concurrent calls share one probe.
func (c *Client) Bootstrap(ctx context.Context) {
	c.probeMu.Lock()
	defer c.probeMu.Unlock()

	c.mu.Lock()
	if !c.loading {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	user, err := c.me(ctx)
	if err != nil {
		if _, rerr := c.post(ctx, "/api/auth/refresh", nil); rerr == nil {
			user, err = c.me(ctx)
		} else {
			c.logger.Debug("silent refresh failed", zap.Error(rerr))
		}
	}

	c.mu.Lock()
	if err == nil && user != nil {
		c.session = Session{User: user, IsAuthenticated: true}
	} else {
		c.session = Session{}
	}
	c.loading = false
	c.mu.Unlock()
}

type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	env, err := c.post(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	c.adoptSession(env.User)
	return env.User, nil
}

func (c *Client) Register(ctx context.Context, params RegisterParams) (*User, error) {
	env, err := c.post(ctx, "/api/auth/register", params)
	if err != nil {
		return nil, err
	}

	c.adoptSession(env.User)
	return env.User, nil
}

// Logout invalidates the server-side session, then clears the local
// cache unconditionally: signing out must never depend on the network.
func (c *Client) Logout(ctx context.Context) {
	if _, err := c.post(ctx, "/api/auth/logout", nil); err != nil {
		c.logger.Warn("logout request failed, clearing local session anyway", zap.Error(err))
	}

	c.mu.Lock()
	c.session = Session{}
	c.loading = false
	c.mu.Unlock()
}

// RequestPasswordReset asks the server to email a reset link. No local
// session state changes.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/api/auth/forgot-password", map[string]string{"email": email})
	return err
}

// ResetPassword completes a reset started from an emailed link. No
// local session state changes; the user logs in again afterwards.
func (c *Client) ResetPassword(ctx context.Context, userID, token, newPassword string) error {
	_, err := c.post(ctx, "/api/auth/reset-password", map[string]string{
		"uid":         userID,
		"token":       token,
		"newPassword": newPassword,
	})
	return err
}

// Session returns a snapshot of the cached session.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Loading reports whether the bootstrap probe is still outstanding.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Client) adoptSession(user *User) {
	c.mu.Lock()
	if user != nil {
		c.session = Session{User: user, IsAuthenticated: true}
	}
	c.loading = false
	c.mu.Unlock()
}

func (c *Client) me(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, errors.New("me response missing user")
	}
	return env.User, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("auth request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Debug("auth response unreadable", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		message := env.Error
		if message == "" {
			message = env.Message
		}
		if message == "" {
			message = resp.Status
		}
		return nil, &APIError{Code: env.Code, Message: message}
	}

	return &env, nil
}
