package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/tokenstore"
)

const genericErrorMessage = "unexpected error"

// Client performs authenticated calls against the Tasker REST API. Every
// request reads the current access token from the store, so a login or
// logout anywhere immediately affects subsequent calls. There is no retry
// and no refresh flow; only the transport's own timeout applies.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   tokenstore.Store
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTimeout sets the transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = timeout }
}

// New builds a client rooted at baseURL. A nil logger falls back to a no-op
// logger.
func New(baseURL string, store tokenstore.Store, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		store:   store,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs one HTTP call and decodes the JSON response into out
// when out is non-nil. body, when non-nil, is serialized as JSON. Any
// failure comes back as *Error; a 401 additionally clears the token store.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	log := c.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("method", method),
		zap.String("path", path),
	)

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "failed to encode request body: " + err.Error()}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Message: "failed to build request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.store.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	log.Debug("sending request")
	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug("failed to read response body", zap.Int("status", resp.StatusCode), zap.Error(err))
		return &Error{Message: "failed to read response body: " + err.Error(), StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if resp.StatusCode == http.StatusUnauthorized {
			// Best-effort local teardown; the caller still decides where
			// to navigate.
			c.store.ClearAccessToken()
		}
		apiErr := normalizeError(raw, resp.StatusCode)
		log.Debug("request rejected", zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Message))
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Debug("invalid response body", zap.Int("status", resp.StatusCode), zap.Error(err))
		return &Error{Message: "invalid response body: " + err.Error(), Body: string(raw), StatusCode: resp.StatusCode}
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodDelete, path, nil, out)
}

// normalizeError maps an error response body to the uniform error shape.
// A JSON body contributes its `error` or `detail` field as the message;
// anything else degrades to a generic message with the raw text attached.
func normalizeError(raw []byte, status int) *Error {
	apiErr := &Error{Message: genericErrorMessage, Body: string(raw), StatusCode: status}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return apiErr
	}
	apiErr.Body = parsed

	if obj, ok := parsed.(map[string]any); ok {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			apiErr.Message = msg
		} else if msg, ok := obj["detail"].(string); ok && msg != "" {
			apiErr.Message = msg
		}
	}
	return apiErr
}
