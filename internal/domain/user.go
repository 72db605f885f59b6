package domain

// User is the authenticated identity record returned by the auth service.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Nickname  string `json:"nickname,omitempty"`
	Team      string `json:"team,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Player is the admin/leaderboard projection of a user. It carries ban and
// admin flags the User identity record does not expose; the two are never
// reconciled client-side.
type Player struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Rating        int    `json:"rating"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	Team          string `json:"team,omitempty"`
	IsBanned      bool   `json:"is_banned"`
	IsAdmin       bool   `json:"is_admin"`
}

// AuthUser holds credentials from the users table. Server-side only.
type AuthUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	IsBanned     bool
	IsAdmin      bool
}
