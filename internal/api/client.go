package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// TokenSource supplies the bearer token for outbound requests and can
// invalidate the persisted session when the backend rejects it.
type TokenSource interface {
	// Token returns the current bearer token, or "" when not logged in.
	Token() string

	// Invalidate clears the persisted session keys.
	Invalidate()
}

// Client is the REST adapter every feature talks through. It attaches the
// bearer token, unwraps the {"data": ...} envelope, and normalizes errors
// to the package sentinels. A 401 clears the session via the TokenSource
// and invokes the injected onUnauthorized callback before returning.
type Client struct {
	cfg            Config
	http           *http.Client
	tokens         TokenSource
	observer       Observer
	onUnauthorized func()
}

// NewClient creates a Client for the configured backend. observer and
// onUnauthorized may be nil.
func NewClient(cfg Config, tokens TokenSource, observer Observer, onUnauthorized func()) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		tokens:         tokens,
		observer:       observer,
		onUnauthorized: onUnauthorized,
	}
}

// envelope is the response shape shared by every backend endpoint.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues one request and decodes the envelope's data field into out.
// out may be nil for calls whose response body is discarded (deletes).
// There is no retry: every error is terminal for the triggering action.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, method, path, body, out)

	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})

	if errors.Is(err, ErrUnauthorized) {
		if c.tokens != nil {
			c.tokens.Invalidate()
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ErrTimeout
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if err := mapStatus(resp.StatusCode, respBody); err != nil {
		return resp.StatusCode, err
	}
	if out == nil {
		return resp.StatusCode, nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if env.Data == nil {
		return resp.StatusCode, fmt.Errorf("%w: missing data field", ErrDecode)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return resp.StatusCode, nil
}

// mapStatus converts a non-2xx HTTP status into the package error taxonomy.
func mapStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}

	// Remaining 4xx: surface the backend's message when it sends one.
	var env envelope
	msg := ""
	if json.Unmarshal(body, &env) == nil {
		msg = env.Message
	}
	return &StatusError{Status: status, Message: msg}
}

// Available reports whether the backend answers its health endpoint.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
