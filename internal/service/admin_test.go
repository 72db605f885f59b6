package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// userRepoStub records ApplyMatchResult calls; everything else is unused.
type userRepoStub struct {
	applied []appliedResult
}

func (s *userRepoStub) FindByEmail(ctx context.Context, db repository.DBTX, email string) (*domain.AuthUser, error) {
	return nil, nil
}

func (s *userRepoStub) Create(ctx context.Context, db repository.DBTX, email, passwordHash, name, nickname, team string) (*domain.User, error) {
	return nil, nil
}

func (s *userRepoStub) UpdateAvatar(ctx context.Context, db repository.DBTX, userID int64, avatarURL string) (*domain.User, error) {
	return nil, nil
}

func (s *userRepoStub) SetBanned(ctx context.Context, db repository.DBTX, userID int64, banned bool) (*domain.Player, error) {
	return nil, nil
}

func (s *userRepoStub) SetTeamName(ctx context.Context, db repository.DBTX, userID, teamID int64) error {
	return nil
}

func (s *userRepoStub) ListByRating(ctx context.Context, db repository.DBTX) ([]domain.Player, error) {
	return nil, nil
}

func (s *userRepoStub) ApplyMatchResult(ctx context.Context, db repository.DBTX, userID int64, won bool) error {
	s.applied = append(s.applied, appliedResult{id: userID, won: won})
	return nil
}

// teamRepoStub records ApplyMatchResult calls; everything else is unused.
type teamRepoStub struct {
	applied []appliedResult
}

func (s *teamRepoStub) Create(ctx context.Context, db repository.DBTX, name, description string) (*domain.Team, error) {
	return nil, nil
}

func (s *teamRepoStub) ListByRating(ctx context.Context, db repository.DBTX) ([]domain.Team, error) {
	return nil, nil
}

func (s *teamRepoStub) UpsertMember(ctx context.Context, db repository.DBTX, teamID, userID int64, role string) (*domain.TeamMember, error) {
	return nil, nil
}

func (s *teamRepoStub) ApplyMatchResult(ctx context.Context, db repository.DBTX, teamID int64, won bool) error {
	s.applied = append(s.applied, appliedResult{id: teamID, won: won})
	return nil
}

func i64(v int64) *int64 { return &v }

func newResultFixture(participants []repository.Participant) (*AdminService, *userRepoStub, *teamRepoStub) {
	users := &userRepoStub{}
	teams := &teamRepoStub{}
	matches := &matchRepoStub{participants: participants}
	svc := NewAdminService(nil, users, teams, matches, nil, noopTestLogger())
	return svc, users, teams
}

func TestApplyMatchResults_NoWinnerStillUpdatesParticipants(t *testing.T) {
	svc, users, teams := newResultFixture([]repository.Participant{
		{UserID: 1, TeamID: i64(10)},
		{UserID: 2, TeamID: nil},
	})
	match := &domain.Match{ID: 7, Team1ID: i64(10), Team2ID: i64(20)}

	require.NoError(t, svc.applyMatchResults(context.Background(), nil, match, nil))

	assert.Empty(t, teams.applied, "a draw leaves team stats alone")
	require.Len(t, users.applied, 2, "every participant is still counted")
	assert.Equal(t, appliedResult{id: 1, won: false}, users.applied[0])
	assert.Equal(t, appliedResult{id: 2, won: false}, users.applied[1])
}

func TestApplyMatchResults_WinnerAndLoserTeams(t *testing.T) {
	svc, users, teams := newResultFixture([]repository.Participant{
		{UserID: 1, TeamID: i64(10)},
		{UserID: 2, TeamID: i64(20)},
		{UserID: 3, TeamID: nil},
	})
	match := &domain.Match{ID: 7, Team1ID: i64(10), Team2ID: i64(20)}

	require.NoError(t, svc.applyMatchResults(context.Background(), nil, match, i64(20)))

	require.Len(t, teams.applied, 2)
	assert.Equal(t, appliedResult{id: 20, won: true}, teams.applied[0])
	assert.Equal(t, appliedResult{id: 10, won: false}, teams.applied[1])

	require.Len(t, users.applied, 3)
	assert.Equal(t, appliedResult{id: 1, won: false}, users.applied[0])
	assert.Equal(t, appliedResult{id: 2, won: true}, users.applied[1])
	assert.Equal(t, appliedResult{id: 3, won: false}, users.applied[2])
}

func TestApplyMatchResults_WinnerOutsideScheduledTeams(t *testing.T) {
	svc, users, teams := newResultFixture([]repository.Participant{
		{UserID: 1, TeamID: i64(99)},
	})
	match := &domain.Match{ID: 7, Team1ID: i64(10), Team2ID: i64(20)}

	require.NoError(t, svc.applyMatchResults(context.Background(), nil, match, i64(99)))

	// The declared winner is credited even when it is neither scheduled
	// side; team1 takes the loss.
	require.Len(t, teams.applied, 2)
	assert.Equal(t, appliedResult{id: 99, won: true}, teams.applied[0])
	assert.Equal(t, appliedResult{id: 10, won: false}, teams.applied[1])

	require.Len(t, users.applied, 1)
	assert.Equal(t, appliedResult{id: 1, won: true}, users.applied[0])
}

func TestApplyMatchResults_WinnerWithNoScheduledOpponent(t *testing.T) {
	svc, _, teams := newResultFixture(nil)
	match := &domain.Match{ID: 7, Team1ID: nil, Team2ID: i64(20)}

	require.NoError(t, svc.applyMatchResults(context.Background(), nil, match, i64(20)))

	// team1 is unset and team2 won, so no loser update happens.
	require.Len(t, teams.applied, 1)
	assert.Equal(t, appliedResult{id: 20, won: true}, teams.applied[0])
}
