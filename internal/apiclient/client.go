// Package apiclient is the single shared request pipeline for the admin
// console. It attaches the bearer token to outgoing requests, normalizes
// transport failures into a typed error taxonomy, and intercepts 401
// responses to force a logout. The login and profile-validation endpoints
// are exempt from interception; their expected 401s are owned by the
// session layer.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Endpoints exempt from 401 interception. A 401 from login simply means
// bad credentials; a 401 from profile validation is handled by the session
// store itself. Intercepting either would cause a logout loop.
var interceptExempt = map[string]bool{
	"/auth/login":   true,
	"/auth/profile": true,
}

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// Client wraps http.Client with the console's request conventions.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	// onUnauthorized fires at most once per intercepted 401 response.
	onUnauthorized func()
	log            zerolog.Logger
}

// New creates a Client rooted at baseURL. tokens may be nil for an
// unauthenticated client.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With().Str("component", "apiclient").Logger(),
	}
}

// SetUnauthorizedHook registers the forced-logout handler invoked when a
// non-exempt request receives a 401.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do issues a request with the full pipeline applied: JSON encoding,
// request ID, bearer injection, failure normalization, 401 interception,
// and JSON decoding of the response body into out (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// Upload issues a multipart POST, streaming the named file part plus extra
// string fields, and decodes the response into out.
func (c *Client) Upload(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		code := ErrCodeNetwork
		if isTimeout(err) {
			code = ErrCodeTimeout
		}
		c.log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("elapsed", time.Since(start)).
			Str("code", string(code)).
			Msg("Request failed without response")
		return newError(code, 0)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(ErrCodeNetwork, resp.StatusCode)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode >= 400 {
		return c.failure(req.URL.Path, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

// errorBody is the backend's error shape. Message may be a plain string or
// an array of strings; fields carries per-field validation messages.
type errorBody struct {
	Message json.RawMessage   `json:"message"`
	Fields  map[string]string `json:"errors"`
}

// failure converts a non-2xx response into an APIError and runs the 401
// interception rule.
func (c *Client) failure(path string, status int, raw []byte) error {
	apiErr := newError(codeForStatus(status), status)

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg := decodeMessage(body.Message); msg != "" {
			apiErr.Message = msg
		}
		apiErr.Fields = body.Fields
	}

	if status == http.StatusUnauthorized && !isExempt(path) {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		// Interception overrides any server message: the user is being
		// logged out, not asked to fix the request.
		apiErr.Message = GetMessage(ErrCodeUnauthorized)
	}

	return apiErr
}

// isExempt matches on the path suffix so a base URL mounted under a
// prefix (e.g. /api/v1) still exempts the right endpoints.
func isExempt(path string) bool {
	for exempt := range interceptExempt {
		if strings.HasSuffix(path, exempt) {
			return true
		}
	}
	return false
}

func codeForStatus(status int) ErrCode {
	switch {
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusConflict:
		return ErrCodeConflict
	case status >= 500:
		return ErrCodeServer
	default:
		return ErrCodeValidation
	}
}

// decodeMessage handles both `"message": "text"` and `"message": ["a","b"]`.
func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}
	return ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
