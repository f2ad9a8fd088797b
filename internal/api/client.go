// Package api is the HTTP layer between the client and the dispatch
// backend: one configured transport plus a typed facade per resource.
// Responses arrive in a {success, data, message} envelope; the transport
// decodes it and hands typed values to the views.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource provides the bearer token for outgoing requests and clears
// it when the backend rejects it. The session store satisfies this.
type TokenSource interface {
	Token() string
	Clear() error
}

// AuthError indicates the backend rejected the session token (HTTP 401).
// By the time a caller sees it the session has already been cleared and
// the unauthorized callback fired.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// APIError is a business-logic failure reported by the backend, either as
// a non-2xx status or a success:false envelope. Message is the backend's
// text, surfaced verbatim in the views.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ErrorMessage extracts a user-facing message from an error: the backend's
// own text when available, otherwise the given fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// envelope is the wire format every endpoint responds with.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client is the single configured transport for the dispatch API. It
// attaches the bearer token when one is present and converts 401 responses
// into cleared sessions plus an OnUnauthorized notification, keeping
// navigation concerns out of the transport itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    TokenSource

	// OnUnauthorized is invoked after a 401 has cleared the session.
	// The application layer translates it into navigation to the login
	// view. May be nil.
	OnUnauthorized func()
}

// NewClient creates a client for the given API base URL
// (e.g. http://localhost:5000/api). There is no retry and no backoff;
// failures propagate to the calling view.
func NewClient(baseURL string, session TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs an HTTP GET request and unmarshals the envelope's data.
func (c *Client) Get(
	ctx context.Context,
	path string,
	query url.Values,
	result interface{},
) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

// do builds the request, attaches auth, and decodes the response envelope.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
	result interface{},
) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(respBody)
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && env.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return &APIError{StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, decodeErr,
		)
	}

	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if result == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf(
			"unmarshaling data from %s %s: %w", method, path, err,
		)
	}

	return nil
}

// handleUnauthorized clears the session, notifies the application, and
// returns the typed auth error. This runs for a 401 from any endpoint,
// including background fetches unrelated to the active view.
func (c *Client) handleUnauthorized(respBody []byte) error {
	_ = c.session.Clear()

	message := "session expired, please log in again"
	var env envelope
	if json.Unmarshal(respBody, &env) == nil && env.Message != "" {
		message = env.Message
	}

	if c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}

	return &AuthError{Message: message}
}
