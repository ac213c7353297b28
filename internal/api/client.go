// Package api implements the HTTP client for the securion REST backend.
// List endpoints return {data: [...], meta: {...}} envelopes, detail and
// mutation endpoints return {data: {...}} or {message: ...}; non-2xx
// responses surface as *Error values.
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

	"github.com/nebstarmalala/securion-console/internal/config"
	"github.com/nebstarmalala/securion-console/internal/logging"
)

// requestIDHeader carries the client-generated request ID so backend
// logs can be correlated with CLI trace IDs.
const requestIDHeader = "X-Request-Id"

// maxErrorBodyBytes bounds how much of an error response body is read
// for the error message.
const maxErrorBodyBytes = 64 << 10

// ErrNotFound wraps 404 responses so callers can branch with errors.Is.
var ErrNotFound = errors.New("resource not found")

// Error is a failed API call: transport-level (Status 0) or a non-2xx
// response carrying the backend's domain message.
type Error struct {
	// Status is the HTTP status code, 0 for transport failures.
	Status int

	// Message is the backend's message field, or a transport summary.
	Message string

	// RequestID is the client-side request ID for correlation.
	RequestID string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api request failed: %s", e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// ListMeta is the pagination block of a list envelope.
type ListMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
	LastPage int `json:"last_page"`
}

// envelope is the wire shape shared by all endpoints.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Meta    *ListMeta       `json:"meta"`
	Message string          `json:"message"`
}

// Client talks to the securion backend. The zero value is not usable;
// construct with NewClient.
type Client struct {
	// BaseURL is the backend root without a trailing slash.
	BaseURL string

	// Token is attached as a bearer credential when non-empty.
	Token string

	// HTTPClient is the underlying transport, replaceable in tests.
	HTTPClient *http.Client

	// UserAgent identifies the CLI to the backend.
	UserAgent string
}

// NewClient builds a Client from API configuration.
func NewClient(cfg config.APIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		Token:      cfg.Token,
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  "securion-cli",
	}
}

// GetList fetches GET /{resource}?{query}, decodes the data array into
// out (a pointer to a slice), and returns the envelope's meta block.
func (c *Client) GetList(ctx context.Context, resource string, query url.Values, out any) (*ListMeta, error) {
	env, err := c.do(ctx, http.MethodGet, "/"+resource, query, nil)
	if err != nil {
		return nil, err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decoding %s list: %w", resource, err)
		}
	}
	meta := env.Meta
	if meta == nil {
		meta = &ListMeta{}
	}
	return meta, nil
}

// GetDetail fetches GET /{resource}/{id} and decodes the data object
// into out.
func (c *Client) GetDetail(ctx context.Context, resource, id string, out any) error {
	env, err := c.do(ctx, http.MethodGet, "/"+resource+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return decodeData(env, resource, out)
}

// Post sends POST {path} with a JSON body and decodes the response data
// into out when out is non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	env, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decodeData(env, path, out)
}

// Put sends PUT {path} with a JSON body and decodes the response data
// into out when out is non-nil.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	env, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	return decodeData(env, path, out)
}

// Delete sends DELETE {path}.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func decodeData(env *envelope, what string, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", what, err)
	}
	return nil
}

// do executes one request. Mutations run to completion or failure; the
// only cancellation point is the context on the request itself.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	log := logging.FromContext(ctx)
	requestID := logging.GetOrGenerateTraceID(ctx)

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	log.Debug().
		Str("component", "api").
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Msg("request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error(), RequestID: requestID}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp, requestID)
	}

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
			return nil, fmt.Errorf("decoding response: %w", decodeErr)
		}
	}

	log.Debug().
		Str("component", "api").
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("response")

	return &env, nil
}

// errorFromResponse turns a non-2xx response into an *Error, preferring
// the backend's message field over the raw body.
func (c *Client) errorFromResponse(resp *http.Response, requestID string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	apiErr := &Error{
		Status:    resp.StatusCode,
		Message:   http.StatusText(resp.StatusCode),
		RequestID: requestID,
	}

	var env envelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		apiErr.Message = env.Message
	}
	return apiErr
}
