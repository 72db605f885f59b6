// Package client implements the authenticated API client for the league
// services. Every operation is a single request/response exchange: no
// retries, no pagination, no local authorization pre-checks. Failures
// normalize to RequestError (the service answered with a non-success
// status) or TransportError (no status could be evaluated at all).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/strikeball/platform/internal/session"
	"github.com/strikeball/platform/internal/wire"
)

// SessionTokenHeader carries the raw session token on authenticated calls.
const SessionTokenHeader = "X-Session-Token"

// Endpoints holds the four service URLs.
type Endpoints struct {
	Auth    string
	Admin   string
	Matches string
	Avatar  string
}

// EndpointsFromBase derives the four URLs from a single base URL.
func EndpointsFromBase(base string) Endpoints {
	base = strings.TrimRight(base, "/")
	return Endpoints{
		Auth:    base + "/auth",
		Admin:   base + "/admin",
		Matches: base + "/matches",
		Avatar:  base + "/avatar",
	}
}

// RequestError reports a completed call that the service rejected. Message
// is the server's error field, or the operation's fallback when the body
// carried none.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// TransportError reports a call that never produced an evaluable status:
// connection failures, cancelled contexts, undecodable success bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// Client issues typed calls against the league services. It reads the
// session token from the injected store at call issue time; in-flight calls
// keep the token they captured.
type Client struct {
	http      *http.Client
	endpoints Endpoints
	sessions  *session.Store
}

// New creates a client. A nil httpClient gets a 30s-timeout default.
func New(endpoints Endpoints, sessions *session.Store, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{http: httpClient, endpoints: endpoints, sessions: sessions}
}

// Sessions exposes the injected session store.
func (c *Client) Sessions() *session.Store { return c.sessions }

// call describes one exchange. A nil token omits the session header
// entirely; a non-nil token sends it even when empty, leaving rejection of
// unauthenticated calls to the server.
type call struct {
	method   string
	url      string
	token    *string
	body     []byte
	fallback string
}

func (c *Client) do(ctx context.Context, req call, out any) error {
	var rd io.Reader
	if req.body != nil {
		rd = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, rd)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != nil {
		httpReq.Header.Set(SessionTokenHeader, *req.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readRequestError(resp, req.fallback)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// readRequestError extracts the server's error message, falling back to the
// operation's static message when the body is missing or unparsable.
func readRequestError(resp *http.Response, fallback string) *RequestError {
	msg := fallback
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		var body wire.ErrorResponse
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			msg = body.Error
		}
	}
	return &RequestError{Status: resp.StatusCode, Message: msg}
}

// token captures the current session token for one call.
func (c *Client) token() *string {
	t := c.sessions.CurrentToken()
	return &t
}
