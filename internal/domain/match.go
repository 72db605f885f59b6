package domain

// Match statuses. The server owns status transitions; clients never set them.
const (
	MatchStatusUpcoming  = "upcoming"
	MatchStatusCompleted = "completed"
)

// Match types form a closed set. The values are the display strings the
// league has always used; they travel on the wire unchanged.
const (
	MatchTypeTournament = "Турнир"
	MatchTypeTraining   = "Тренировка"
	MatchTypeRanked     = "Рейтинговый"
)

// ValidMatchType reports whether t is one of the known match types.
func ValidMatchType(t string) bool {
	switch t {
	case MatchTypeTournament, MatchTypeTraining, MatchTypeRanked:
		return true
	}
	return false
}

// Match represents a scheduled or completed match. Optional columns are
// pointers so an absent value is distinguishable from zero.
type Match struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	MatchType         string `json:"match_type"`
	MatchDate         string `json:"match_date"`
	Status            string `json:"status"`
	MaxPlayers        *int   `json:"max_players,omitempty"`
	Team1ID           *int64 `json:"team1_id,omitempty"`
	Team2ID           *int64 `json:"team2_id,omitempty"`
	Team1Name         string `json:"team1_name,omitempty"`
	Team2Name         string `json:"team2_name,omitempty"`
	WinnerTeamID      *int64 `json:"winner_team_id,omitempty"`
	WinnerName        string `json:"winner_name,omitempty"`
	ScoreTeam1        int    `json:"score_team1"`
	ScoreTeam2        int    `json:"score_team2"`
	DurationMinutes   *int   `json:"duration_minutes,omitempty"`
	RegisteredPlayers int    `json:"registered_players"`
}

// Rating deltas applied when a match completes. Rating is otherwise opaque
// to every client.
const (
	TeamWinRatingDelta    = 50
	TeamLossRatingDelta   = -25
	PlayerWinRatingDelta  = 30
	PlayerLossRatingDelta = -15
)
