package client

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
	"time"

	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/dmitrijs2005/devboard/internal/common"
	"github.com/google/uuid"
)

// maxBodySize caps how much of a response body is read. Backend payloads
// are small JSON documents; anything larger is a misbehaving server.
const maxBodySize = 1 << 20

// HTTPClient talks JSON over HTTP to the DevBoard backend.
//
// The bearer token is attached to every request once set. Login stores the
// token it receives; other flows install one explicitly via SetToken.
// Safe for concurrent use: the REPL and the connectivity watcher may call
// it from different goroutines.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// errorBody is the error envelope the backend uses for non-2xx responses.
// Some endpoints populate "message", some "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// doJSON performs one request/response cycle. Transport failures map to
// ErrUnavailable; non-2xx responses become *APIError carrying the server
// message when the body had one.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session. A 401 here means the
// credentials were wrong, not that a token expired, so it maps to
// ErrInvalidCredentials rather than ErrUnauthorized. The received token is
// installed on the client.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password-request", body, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password", body, nil)
}

func (c *HTTPClient) FetchProfile(ctx context.Context) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) FetchOnboarding(ctx context.Context) (*models.OnboardingForm, error) {
	var form models.OnboardingForm
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/onboarding", nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (c *HTTPClient) SaveOnboarding(ctx context.Context, form *models.OnboardingForm) error {
	return c.doJSON(ctx, http.MethodPost, "/api/user/onboarding", form, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}
