// Package api is the thin client for the backend REST service that owns
// all persistence and authorization. Every call attaches the caller's
// bearer token, performs no retries, and translates non-2xx responses into
// typed failures for the views to surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GenericFailure is the RequestError message used when the backend gave
// no structured error body. Views substitute their own copy for it.
const GenericFailure = "request failed"

// RequestError is any failed backend call: the HTTP status plus the
// message from the server's structured error body when present, else a
// generic fallback.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend request failed: %d %s", e.Status, e.Message)
}

// Observer records outbound backend calls. Satisfied by the metrics
// collector; a nil observer disables recording.
type Observer interface {
	ObserveBackendCall(resource, method string, status int, elapsed time.Duration)
}

// Client wraps the backend endpoints for assets, categories, statuses,
// users, and authentication.
type Client struct {
	base     string
	http     *http.Client
	observer Observer
}

// New creates a client for the backend at base. The timeout bounds each
// individual call on top of any context deadline.
func New(base string, timeout time.Duration, observer Observer) *Client {
	return &Client{
		base:     strings.TrimRight(base, "/"),
		http:     &http.Client{Timeout: timeout},
		observer: observer,
	}
}

// errorBody is the backend's structured error envelope. Different
// endpoints use "message" or "error"; either is accepted.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one backend call. The request context propagates, so a
// caller navigating away cancels the in-flight fetch. When out is non-nil
// the 2xx response body is decoded into it.
func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, token string, payload, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(resource, method, 0, start)
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()
	c.observe(resource, method, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) observe(resource, method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackendCall(resource, method, status, time.Since(start))
	}
}

func errorMessage(body io.Reader) string {
	var parsed errorBody
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return GenericFailure
}
