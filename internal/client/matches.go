package client

import (
	"context"
	"net/http"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/wire"
)

// Matches lists all matches. Public: no session header is sent.
func (c *Client) Matches(ctx context.Context) ([]domain.Match, error) {
	var resp wire.MatchListResponse
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		url:      c.endpoints.Matches,
		fallback: "Failed to fetch matches",
	}, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// JoinMatch registers the current user for a match.
func (c *Client) JoinMatch(ctx context.Context, matchID int64) error {
	body, err := wire.EncodeMatch(wire.JoinMatchRequest{MatchID: matchID})
	if err != nil {
		return &TransportError{Err: err}
	}

	return c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Matches,
		token:    c.token(),
		body:     body,
		fallback: "Failed to join match",
	}, nil)
}

// LeaveMatch withdraws the current user from a match.
func (c *Client) LeaveMatch(ctx context.Context, matchID int64) error {
	body, err := wire.EncodeMatch(wire.LeaveMatchRequest{MatchID: matchID})
	if err != nil {
		return &TransportError{Err: err}
	}

	return c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Matches,
		token:    c.token(),
		body:     body,
		fallback: "Failed to leave match",
	}, nil)
}
