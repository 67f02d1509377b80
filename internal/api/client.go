package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/anirbansen/framap/internal/model"
)

// TokenProvider supplies the current bearer token, or "" when there is none.
// Reads are fail-open: a provider that cannot produce a token returns ""
// and the request goes out unauthenticated rather than failing.
type TokenProvider func() string

// Client talks to the FRA backend. All requests are rate limited, carry the
// bearer token when one is available, and report authorization rejections
// through the unauthorized hook exactly once per response.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
	log        zerolog.Logger

	mu             sync.RWMutex
	tokenFn        TokenProvider
	onUnauthorized func()
}

// New creates a client for the backend at baseURL.
func New(baseURL string, cfg model.HTTPConfig, log zerolog.Logger) *Client {
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 5
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 5
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 10_000_000
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		maxBytes:   maxBytes,
		limiter:    rate.NewLimiter(rate.Limit(perSec), burst),
		log:        log,
	}
}

// SetTokenProvider installs the source of the default bearer credential.
// The session store registers itself here; passing nil removes it.
func (c *Client) SetTokenProvider(fn TokenProvider) {
	c.mu.Lock()
	c.tokenFn = fn
	c.mu.Unlock()
}

// OnUnauthorized registers the handler fired whenever any endpoint rejects
// a request for authorization reasons. Registered once, at startup, by the
// session store.
func (c *Client) OnUnauthorized(handler func()) {
	c.mu.Lock()
	c.onUnauthorized = handler
	c.mu.Unlock()
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the success body of the auth endpoints.
type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	User        model.UserProfile `json:"user"`
}

// Login exchanges credentials for a token and profile. A rejection comes
// back as *AuthenticationError and never touches the unauthorized hook:
// failing to log in is not an expired session.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Username: username, Password: password}, &out, false)
	if err != nil {
		return nil, asAuthError(err, "Login failed")
	}
	return &out, nil
}

// Register creates an account; the contract mirrors Login, with the new
// account's token returned.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", registration{Username: username, Email: email, Password: password}, &out, false)
	if err != nil {
		return nil, asAuthError(err, "Registration failed")
	}
	return &out, nil
}

// Claims fetches all claim records visible to the current session.
func (c *Client) Claims(ctx context.Context) ([]model.ClaimRecord, error) {
	var out struct {
		Claims []model.ClaimRecord `json:"claims"`
	}
	if err := c.do(ctx, http.MethodGet, "/claims", nil, &out, true); err != nil {
		return nil, err
	}
	return validRecords(out.Claims, "claim", c.log), nil
}

// Assets fetches all asset records visible to the current session.
func (c *Client) Assets(ctx context.Context) ([]model.AssetRecord, error) {
	var out struct {
		Assets []model.AssetRecord `json:"assets"`
	}
	if err := c.do(ctx, http.MethodGet, "/assets", nil, &out, true); err != nil {
		return nil, err
	}
	return validRecords(out.Assets, "asset", c.log), nil
}

// Health pings the backend root. Useful for diagnosing connectivity before
// blaming credentials; a failing ping never touches the session.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/", nil, &out, false)
}

// do performs one request. authHook controls whether a 401 fires the
// unauthorized handler; the auth endpoints opt out so a wrong password does
// not tear down an unrelated live session.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authHook bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Op: "rate limit", Err: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return &NetworkError{Op: "read response", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized && authHook {
		c.fireUnauthorized(method, path)
		return fmt.Errorf("%s %s: %w", method, path, ErrSessionExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) token() string {
	c.mu.RLock()
	fn := c.tokenFn
	c.mu.RUnlock()
	if fn == nil {
		return ""
	}
	return fn()
}

func (c *Client) fireUnauthorized(method, path string) {
	c.mu.RLock()
	handler := c.onUnauthorized
	c.mu.RUnlock()
	if handler != nil {
		c.log.Warn().Str("method", method).Str("path", path).Msg("authorization rejected, invalidating session")
		handler()
	}
}

// errorMessage extracts the backend's {"error": "..."} body, if any.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Error
}

// asAuthError converts any auth-endpoint failure into an
// AuthenticationError, preferring the server-supplied message. Transport
// errors keep their type so callers can tell "bad password" from "backend
// unreachable".
func asAuthError(err error, fallback string) error {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return err
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return &AuthenticationError{Message: statusErr.Message}
	}
	return &AuthenticationError{Message: fallback}
}

type validatable interface {
	Validate() error
}

// validRecords drops payload entries that fail boundary validation, logging
// each skip. Mirrors the geometry layer's per-record isolation: one bad
// entry never rejects the response.
func validRecords[T validatable](records []T, kind string, log zerolog.Logger) []T {
	kept := records[:0]
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			log.Warn().Err(err).Str("kind", kind).Msg("dropping invalid record from response")
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
