package wire

import "github.com/strikeball/platform/internal/domain"

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User         domain.User `json:"user"`
	SessionToken string      `json:"session_token"`
}

// UserResponse wraps the current-user lookup.
type UserResponse struct {
	User domain.User `json:"user"`
}

// AdminDataResponse is the admin endpoint's GET payload.
type AdminDataResponse struct {
	Players []domain.Player `json:"players"`
	Teams   []domain.Team   `json:"teams"`
}

// TeamResponse wraps a created team.
type TeamResponse struct {
	Team domain.Team `json:"team"`
}

// MemberResponse wraps a team membership row.
type MemberResponse struct {
	Member domain.TeamMember `json:"member"`
}

// PlayerBanResponse echoes the player whose banned flag changed.
type PlayerBanResponse struct {
	Player domain.Player `json:"player"`
}

// MatchResponse wraps a created or updated match.
type MatchResponse struct {
	Match domain.Match `json:"match"`
}

// MatchListResponse is the matches endpoint's GET payload.
type MatchListResponse struct {
	Matches []domain.Match `json:"matches"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// AvatarResponse is returned after an avatar upload.
type AvatarResponse struct {
	User      domain.User `json:"user"`
	AvatarURL string      `json:"avatar_url"`
}

// AvatarUploadRequest is the avatar endpoint's POST body. The image is a
// data URL; this endpoint has no action dispatch.
type AvatarUploadRequest struct {
	Image string `json:"image"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
