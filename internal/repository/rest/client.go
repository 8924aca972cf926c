package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"

	"github.com/goccy/go-json"
)

const (
	defaultTimeout    = 10 * time.Second
	idempotencyHeader = "Idempotency-Key"
	maxErrorBody      = 4 << 10
)

// Client calls the commerce backend's REST API on behalf of a session.
// It does not retry; callers see every failure.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP is used by tests to point at an httptest server.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    hc,
	}
}

type requestOptions struct {
	idempotencyKey string
}

// do sends body as JSON and decodes a 2xx response into out (when out is non-nil).
// A status >= 400 becomes *domain.BackendError carrying the backend's message.
func (c *Client) do(ctx context.Context, method string, segments []string, sess *domain.Session, body, out any, opts requestOptions) error {
	endpoint, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	if opts.idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, opts.idempotencyKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("method", method).Str("url", endpoint).Msg("Backend request failed")
		return fmt.Errorf("backend %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	logger.WithContext(ctx).Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration_ms", time.Since(start)).
		Msg("Backend call")

	if resp.StatusCode >= 400 {
		be := &domain.BackendError{Status: resp.StatusCode, Message: drainError(resp.Body)}
		logger.WithContext(ctx).Warn().
			Int("status", be.Status).
			Str("path", req.URL.Path).
			Str("message", be.Message).
			Msg("Backend rejected request")
		return be
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// drainError extracts a human message from an error body: {"message"} or {"error"}, else the text.
func drainError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	return string(data)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var be *domain.BackendError
	return errors.As(err, &be) && be.Status == http.StatusNotFound
}
