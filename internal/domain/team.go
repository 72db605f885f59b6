package domain

// Team represents a teams row.
type Team struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Rating        int    `json:"rating"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
}

// TeamMember links a user to a team with a role.
type TeamMember struct {
	TeamID int64  `json:"team_id"`
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// DefaultMemberRole is assigned when an admin adds a player without a role.
const DefaultMemberRole = "member"
