package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/strikeball/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Identity is the minimal view of a session's user that authorization
// decisions need.
type Identity struct {
	UserID   int64
	IsAdmin  bool
	IsBanned bool
	TeamID   *int64
}

// UserRepository provides access to the users table.
type UserRepository interface {
	// FindByEmail returns credentials for login, or nil if unknown.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AuthUser, error)

	// Create inserts a user and returns the identity projection.
	Create(ctx context.Context, db DBTX, email, passwordHash, name, nickname, team string) (*domain.User, error)

	// UpdateAvatar sets avatar_url and returns the refreshed identity.
	UpdateAvatar(ctx context.Context, db DBTX, userID int64, avatarURL string) (*domain.User, error)

	// SetBanned flips the banned flag and returns the affected player.
	SetBanned(ctx context.Context, db DBTX, userID int64, banned bool) (*domain.Player, error)

	// SetTeamName denormalizes the team name onto the user row.
	SetTeamName(ctx context.Context, db DBTX, userID, teamID int64) error

	// ListByRating returns the player leaderboard, best rating first.
	ListByRating(ctx context.Context, db DBTX) ([]domain.Player, error)

	// ApplyMatchResult bumps counters and rating for one participant.
	ApplyMatchResult(ctx context.Context, db DBTX, userID int64, won bool) error
}

// SessionRepository provides access to user_sessions.
type SessionRepository interface {
	// Create stores a new session token.
	Create(ctx context.Context, db DBTX, userID int64, token string, expiresAt time.Time) error

	// ResolveUser returns the identity record for an unexpired token.
	ResolveUser(ctx context.Context, db DBTX, token string) (*domain.User, error)

	// ResolveIdentity returns the authorization view for an unexpired token.
	ResolveIdentity(ctx context.Context, db DBTX, token string) (*Identity, error)
}

// TeamRepository provides access to teams and team_members.
type TeamRepository interface {
	// Create inserts a team.
	Create(ctx context.Context, db DBTX, name, description string) (*domain.Team, error)

	// ListByRating returns the team leaderboard, best rating first.
	ListByRating(ctx context.Context, db DBTX) ([]domain.Team, error)

	// UpsertMember adds a player to a team, updating the role on conflict.
	UpsertMember(ctx context.Context, db DBTX, teamID, userID int64, role string) (*domain.TeamMember, error)

	// ApplyMatchResult bumps counters and rating for one side.
	ApplyMatchResult(ctx context.Context, db DBTX, teamID int64, won bool) error
}

// Participant is one registered user in a match.
type Participant struct {
	UserID int64
	TeamID *int64
}

// CreateMatchParams carries the columns of a new match.
type CreateMatchParams struct {
	Title      string
	MatchType  string
	MatchDate  time.Time
	MaxPlayers *int
	Team1ID    *int64
	Team2ID    *int64
	CreatedBy  int64
}

// CompleteMatchParams carries a match result.
type CompleteMatchParams struct {
	MatchID         int64
	WinnerTeamID    *int64
	ScoreTeam1      int
	ScoreTeam2      int
	DurationMinutes *int
}

// MatchRepository provides access to matches and match_participants.
type MatchRepository interface {
	// Create inserts a match.
	Create(ctx context.Context, db DBTX, params CreateMatchParams) (*domain.Match, error)

	// Complete marks a match completed and records the result.
	Complete(ctx context.Context, db DBTX, params CompleteMatchParams) (*domain.Match, error)

	// List returns all matches with resolved team names and participant
	// counts, newest match date first.
	List(ctx context.Context, db DBTX) ([]domain.Match, error)

	// FindForJoin returns status and capacity for a membership check.
	FindForJoin(ctx context.Context, db DBTX, matchID int64) (status string, maxPlayers *int, err error)

	// CountParticipants counts registrations for a match.
	CountParticipants(ctx context.Context, db DBTX, matchID int64) (int, error)

	// AddParticipant registers a user; reports false when already registered.
	AddParticipant(ctx context.Context, db DBTX, matchID, userID int64, teamID *int64) (bool, error)

	// CancelParticipant marks a registration cancelled.
	CancelParticipant(ctx context.Context, db DBTX, matchID, userID int64) error

	// ListParticipants returns the registered users of a match.
	ListParticipants(ctx context.Context, db DBTX, matchID int64) ([]Participant, error)
}
