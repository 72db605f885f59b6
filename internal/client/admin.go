package client

import (
	"context"
	"net/http"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/wire"
)

// AdminData fetches the players and teams leaderboards.
func (c *Client) AdminData(ctx context.Context) (*wire.AdminDataResponse, error) {
	var resp wire.AdminDataResponse
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		url:      c.endpoints.Admin,
		token:    c.token(),
		fallback: "Failed to fetch admin data",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTeam creates a team and returns it.
func (c *Client) CreateTeam(ctx context.Context, name, description string) (*domain.Team, error) {
	body, err := wire.EncodeAdmin(wire.CreateTeamRequest{Name: name, Description: description})
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var resp wire.TeamResponse
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Admin,
		token:    c.token(),
		body:     body,
		fallback: "Failed to create team",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

// AddPlayerToTeam assigns a player to a team. An empty role defaults to
// member.
func (c *Client) AddPlayerToTeam(ctx context.Context, teamID, playerID int64, role string) error {
	if role == "" {
		role = domain.DefaultMemberRole
	}
	body, err := wire.EncodeAdmin(wire.AddPlayerToTeamRequest{TeamID: teamID, PlayerID: playerID, Role: role})
	if err != nil {
		return &TransportError{Err: err}
	}

	return c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Admin,
		token:    c.token(),
		body:     body,
		fallback: "Failed to add player to team",
	}, nil)
}

// BanPlayer sets or clears a player's banned flag. The change is visible
// only through a subsequent AdminData read; nothing is patched locally.
func (c *Client) BanPlayer(ctx context.Context, playerID int64, banned bool) error {
	body, err := wire.EncodeAdmin(wire.BanPlayerRequest{PlayerID: playerID, Banned: &banned})
	if err != nil {
		return &TransportError{Err: err}
	}

	return c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Admin,
		token:    c.token(),
		body:     body,
		fallback: "Failed to ban player",
	}, nil)
}

// CreateMatch schedules a match and returns the created row.
func (c *Client) CreateMatch(ctx context.Context, req wire.CreateMatchRequest) (*domain.Match, error) {
	body, err := wire.EncodeAdmin(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var resp wire.MatchResponse
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Admin,
		token:    c.token(),
		body:     body,
		fallback: "Failed to create match",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp.Match, nil
}

// CompleteMatch records a result and returns the updated match.
func (c *Client) CompleteMatch(ctx context.Context, req wire.CompleteMatchRequest) (*domain.Match, error) {
	body, err := wire.EncodeAdmin(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var resp wire.MatchResponse
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Admin,
		token:    c.token(),
		body:     body,
		fallback: "Failed to complete match",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp.Match, nil
}
