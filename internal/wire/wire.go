// Package wire defines the JSON bodies exchanged with the auth, admin and
// matches endpoints. Each POST endpoint dispatches on an "action" field; the
// request variants below form a closed set per endpoint and decoding rejects
// every tag outside it.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Action tags, one closed set per endpoint.
const (
	ActionRegister = "register"
	ActionLogin    = "login"

	ActionCreateTeam      = "create_team"
	ActionAddPlayerToTeam = "add_player_to_team"
	ActionBanPlayer       = "ban_player"
	ActionCreateMatch     = "create_match"
	ActionCompleteMatch   = "complete_match"

	ActionJoinMatch  = "join_match"
	ActionLeaveMatch = "leave_match"
)

// ErrUnknownAction is returned when a body carries an action tag outside the
// endpoint's set.
var ErrUnknownAction = errors.New("unknown action")

type envelope struct {
	Action string `json:"action"`
}

// AuthRequest is a variant of the auth endpoint's POST body.
type AuthRequest interface{ authAction() string }

// AdminRequest is a variant of the admin endpoint's POST body.
type AdminRequest interface{ adminAction() string }

// MatchRequest is a variant of the matches endpoint's POST body.
type MatchRequest interface{ matchAction() string }

// RegisterRequest creates a user account and a session.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Team     string `json:"team,omitempty"`
}

func (RegisterRequest) authAction() string { return ActionRegister }

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (LoginRequest) authAction() string { return ActionLogin }

// CreateTeamRequest creates a team.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (CreateTeamRequest) adminAction() string { return ActionCreateTeam }

// AddPlayerToTeamRequest assigns a player to a team.
type AddPlayerToTeamRequest struct {
	TeamID   int64  `json:"team_id"`
	PlayerID int64  `json:"player_id"`
	Role     string `json:"role,omitempty"`
}

func (AddPlayerToTeamRequest) adminAction() string { return ActionAddPlayerToTeam }

// BanPlayerRequest sets or clears a player's banned flag. A nil Banned means
// true, matching the endpoint's historic default.
type BanPlayerRequest struct {
	PlayerID int64 `json:"player_id"`
	Banned   *bool `json:"banned,omitempty"`
}

func (BanPlayerRequest) adminAction() string { return ActionBanPlayer }

// IsBanned resolves the default.
func (r BanPlayerRequest) IsBanned() bool { return r.Banned == nil || *r.Banned }

// CreateMatchRequest schedules a match.
type CreateMatchRequest struct {
	Title      string `json:"title"`
	MatchType  string `json:"match_type,omitempty"`
	MatchDate  string `json:"match_date"`
	MaxPlayers *int   `json:"max_players,omitempty"`
	Team1ID    *int64 `json:"team1_id,omitempty"`
	Team2ID    *int64 `json:"team2_id,omitempty"`
}

func (CreateMatchRequest) adminAction() string { return ActionCreateMatch }

// CompleteMatchRequest records a match result.
type CompleteMatchRequest struct {
	MatchID         int64  `json:"match_id"`
	WinnerTeamID    *int64 `json:"winner_team_id,omitempty"`
	ScoreTeam1      int    `json:"score_team1"`
	ScoreTeam2      int    `json:"score_team2"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

func (CompleteMatchRequest) adminAction() string { return ActionCompleteMatch }

// JoinMatchRequest registers the calling user for a match.
type JoinMatchRequest struct {
	MatchID int64 `json:"match_id"`
}

func (JoinMatchRequest) matchAction() string { return ActionJoinMatch }

// LeaveMatchRequest withdraws the calling user from a match.
type LeaveMatchRequest struct {
	MatchID int64 `json:"match_id"`
}

func (LeaveMatchRequest) matchAction() string { return ActionLeaveMatch }

// EncodeAuth marshals an auth variant with its action tag.
func EncodeAuth(r AuthRequest) ([]byte, error) {
	switch v := r.(type) {
	case RegisterRequest:
		return tag(ActionRegister, v)
	case LoginRequest:
		return tag(ActionLogin, v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, r)
	}
}

// EncodeAdmin marshals an admin variant with its action tag.
func EncodeAdmin(r AdminRequest) ([]byte, error) {
	switch v := r.(type) {
	case CreateTeamRequest:
		return tag(ActionCreateTeam, v)
	case AddPlayerToTeamRequest:
		return tag(ActionAddPlayerToTeam, v)
	case BanPlayerRequest:
		return tag(ActionBanPlayer, v)
	case CreateMatchRequest:
		return tag(ActionCreateMatch, v)
	case CompleteMatchRequest:
		return tag(ActionCompleteMatch, v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, r)
	}
}

// EncodeMatch marshals a matches variant with its action tag.
func EncodeMatch(r MatchRequest) ([]byte, error) {
	switch v := r.(type) {
	case JoinMatchRequest:
		return tag(ActionJoinMatch, v)
	case LeaveMatchRequest:
		return tag(ActionLeaveMatch, v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, r)
	}
}

func tag(action string, v any) ([]byte, error) {
	fields, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	tagged, err := json.Marshal(envelope{Action: action})
	if err != nil {
		return nil, err
	}
	if string(fields) == "{}" {
		return tagged, nil
	}
	// Splice the tag into the variant's object.
	out := append(tagged[:len(tagged)-1], ',')
	out = append(out, fields[1:]...)
	return out, nil
}

// DecodeAuth parses an auth endpoint POST body.
func DecodeAuth(body []byte) (AuthRequest, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	switch env.Action {
	case ActionRegister:
		var v RegisterRequest
		return v, decode(body, &v)
	case ActionLogin:
		var v LoginRequest
		return v, decode(body, &v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Action)
	}
}

// DecodeAdmin parses an admin endpoint POST body.
func DecodeAdmin(body []byte) (AdminRequest, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	switch env.Action {
	case ActionCreateTeam:
		var v CreateTeamRequest
		return v, decode(body, &v)
	case ActionAddPlayerToTeam:
		var v AddPlayerToTeamRequest
		return v, decode(body, &v)
	case ActionBanPlayer:
		var v BanPlayerRequest
		return v, decode(body, &v)
	case ActionCreateMatch:
		var v CreateMatchRequest
		return v, decode(body, &v)
	case ActionCompleteMatch:
		var v CompleteMatchRequest
		return v, decode(body, &v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Action)
	}
}

// DecodeMatch parses a matches endpoint POST body.
func DecodeMatch(body []byte) (MatchRequest, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	switch env.Action {
	case ActionJoinMatch:
		var v JoinMatchRequest
		return v, decode(body, &v)
	case ActionLeaveMatch:
		var v LeaveMatchRequest
		return v, decode(body, &v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Action)
	}
}

func decode(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %T: %w", dst, err)
	}
	return nil
}
