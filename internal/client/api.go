// Package client talks to the training-center REST API. It keeps no state of
// its own apart from the session cookie jar; caching lives in package cache.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

// RequestIDHeader carries a per-request correlation id
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 4 << 10

// API is the low-level transport shared by all resources
type API struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures an API
type Option func(*API)

// WithHTTPClient sets the HTTP client to start from. New works on a copy, so
// the caller's client is never modified; a cookie jar is added when missing.
func WithHTTPClient(c *http.Client) Option {
	return func(a *API) {
		a.http = c
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(a *API) {
		a.logger = l
	}
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(a *API) {
		a.timeout = d
	}
}

// New creates an API rooted at baseURL, e.g. http://localhost:8080/api
func New(baseURL string, opts ...Option) (*API, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", apperrors.ErrBadRequest)
	}

	a := &API{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	hc := *a.http
	if a.timeout > 0 {
		hc.Timeout = a.timeout
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	a.http = &hc

	return a, nil
}

// BaseURL returns the configured origin and base path
func (a *API) BaseURL() string {
	return a.baseURL
}

// RequestError is returned for every failed call: transport errors and non-2xx responses
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %d: %v", e.Method, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unwrap exposes ErrRequestFailed, the sentinel matching the status and the transport cause
func (e *RequestError) Unwrap() []error {
	errs := []error{apperrors.ErrRequestFailed}
	if s := statusSentinel(e.Status); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrValidationFailed
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthenticated
	case http.StatusForbidden:
		return apperrors.ErrPermissionDenied
	case http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	case http.StatusConflict:
		return apperrors.ErrConflict
	}
	return nil
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}

// doJSON sends in as a JSON body (when non-nil) and decodes the response into out (when non-nil)
func (a *API) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}
	return a.do(ctx, method, path, body, "application/json", out)
}

func (a *API) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		a.logger.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	a.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("request_id", requestID).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		code, message := errorBody(raw)
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Code: code, Message: message}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func errorBody(raw []byte) (string, string) {
	var envelope dto.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return string(envelope.Code), envelope.Message
	}
	return "", strings.TrimSpace(string(raw))
}
