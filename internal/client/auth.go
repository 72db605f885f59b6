package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/wire"
)

// Register creates an account and persists the returned session. The
// returned token and user are stored exactly as the service sent them.
func (c *Client) Register(ctx context.Context, req wire.RegisterRequest) (*wire.AuthResponse, error) {
	body, err := wire.EncodeAuth(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var resp wire.AuthResponse
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Auth,
		body:     body,
		fallback: "Registration failed",
	}, &resp); err != nil {
		return nil, err
	}

	if err := c.sessions.Save(resp.SessionToken, resp.User); err != nil {
		return &resp, fmt.Errorf("persist session: %w", err)
	}
	return &resp, nil
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*wire.AuthResponse, error) {
	body, err := wire.EncodeAuth(wire.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var resp wire.AuthResponse
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Auth,
		body:     body,
		fallback: "Login failed",
	}, &resp); err != nil {
		return nil, err
	}

	if err := c.sessions.Save(resp.SessionToken, resp.User); err != nil {
		return &resp, fmt.Errorf("persist session: %w", err)
	}
	return &resp, nil
}

// CurrentUser resolves the stored token to a fresh user snapshot. This is
// the one soft-failing operation: any failure, transport or status, clears
// the session and reports "no user" instead of an error. A stale token thus
// self-heals to a logged-out state on the next load.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	token := c.sessions.CurrentToken()
	if token == "" {
		return nil, nil
	}

	var resp wire.UserResponse
	if err := c.do(ctx, call{
		method: http.MethodGet,
		url:    c.endpoints.Auth,
		token:  &token,
	}, &resp); err != nil {
		if clearErr := c.sessions.Clear(); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}

	// Refresh the snapshot, keeping the token that just proved valid.
	if err := c.sessions.Save(token, resp.User); err != nil {
		return &resp.User, fmt.Errorf("persist session: %w", err)
	}
	return &resp.User, nil
}

// Logout clears the local session. The service keeps its record; only the
// client forgets the token.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}
