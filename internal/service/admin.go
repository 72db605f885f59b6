package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/infra"
	"github.com/strikeball/platform/internal/repository"
	"github.com/strikeball/platform/internal/wire"
)

// TopicMatchCompleted carries match result events for downstream consumers.
const TopicMatchCompleted = "strikeball.match.completed"

// AdminService implements the league management operations.
type AdminService struct {
	pool     *pgxpool.Pool
	users    repository.UserRepository
	teams    repository.TeamRepository
	matches  repository.MatchRepository
	producer *infra.KafkaProducer
	logger   *slog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	teams repository.TeamRepository,
	matches repository.MatchRepository,
	producer *infra.KafkaProducer,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		pool:     pool,
		users:    users,
		teams:    teams,
		matches:  matches,
		producer: producer,
		logger:   logger,
	}
}

// AdminData is the combined leaderboard snapshot for the admin dashboard.
type AdminData struct {
	Players []domain.Player
	Teams   []domain.Team
}

// Data returns all players and teams ordered by rating.
func (s *AdminService) Data(ctx context.Context) (*AdminData, error) {
	players, err := s.users.ListByRating(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list players", err)
	}
	teams, err := s.teams.ListByRating(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list teams", err)
	}
	return &AdminData{Players: players, Teams: teams}, nil
}

// CreateTeam creates a team with the default starting rating.
func (s *AdminService) CreateTeam(ctx context.Context, input wire.CreateTeamRequest) (*domain.Team, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation("Team name required")
	}
	team, err := s.teams.Create(ctx, s.pool, input.Name, input.Description)
	if err != nil {
		return nil, domain.ErrInternal("create team", err)
	}
	return team, nil
}

// AddPlayerToTeam assigns a player to a team and denormalizes the team name
// onto the user row.
func (s *AdminService) AddPlayerToTeam(ctx context.Context, input wire.AddPlayerToTeamRequest) (*domain.TeamMember, error) {
	if input.TeamID == 0 || input.PlayerID == 0 {
		return nil, domain.ErrValidation("team_id and player_id are required")
	}
	role := input.Role
	if role == "" {
		role = domain.DefaultMemberRole
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	member, err := s.teams.UpsertMember(ctx, tx, input.TeamID, input.PlayerID, role)
	if err != nil {
		return nil, domain.ErrInternal("add team member", err)
	}
	if err := s.users.SetTeamName(ctx, tx, input.PlayerID, input.TeamID); err != nil {
		return nil, domain.ErrInternal("set team name", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return member, nil
}

// BanPlayer sets or clears a player's banned flag.
func (s *AdminService) BanPlayer(ctx context.Context, input wire.BanPlayerRequest) (*domain.Player, error) {
	if input.PlayerID == 0 {
		return nil, domain.ErrValidation("player_id is required")
	}
	player, err := s.users.SetBanned(ctx, s.pool, input.PlayerID, input.IsBanned())
	if err != nil {
		return nil, domain.ErrInternal("set banned", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", input.PlayerID)
	}
	return player, nil
}

// CreateMatch schedules a match. The type defaults to tournament and the
// date accepts both RFC 3339 and the shorter datetime-local form.
func (s *AdminService) CreateMatch(ctx context.Context, input wire.CreateMatchRequest, createdBy int64) (*domain.Match, error) {
	if input.Title == "" || input.MatchDate == "" {
		return nil, domain.ErrValidation("Title and match date are required")
	}
	matchType := input.MatchType
	if matchType == "" {
		matchType = domain.MatchTypeTournament
	}
	if !domain.ValidMatchType(matchType) {
		return nil, domain.ErrValidation(fmt.Sprintf("Unknown match type %q", matchType))
	}
	date, err := parseMatchDate(input.MatchDate)
	if err != nil {
		return nil, domain.ErrValidation("Invalid match date")
	}

	match, err := s.matches.Create(ctx, s.pool, repository.CreateMatchParams{
		Title:      input.Title,
		MatchType:  matchType,
		MatchDate:  date,
		MaxPlayers: input.MaxPlayers,
		Team1ID:    input.Team1ID,
		Team2ID:    input.Team2ID,
		CreatedBy:  createdBy,
	})
	if err != nil {
		return nil, domain.ErrInternal("create match", err)
	}
	return match, nil
}

// CompleteMatch records a result and applies rating deltas to both teams and
// every registered participant in one transaction. Participants on the
// winning team gain rating, everyone else loses some.
func (s *AdminService) CompleteMatch(ctx context.Context, input wire.CompleteMatchRequest) (*domain.Match, error) {
	if input.MatchID == 0 {
		return nil, domain.ErrValidation("match_id is required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	match, err := s.matches.Complete(ctx, tx, repository.CompleteMatchParams{
		MatchID:         input.MatchID,
		WinnerTeamID:    input.WinnerTeamID,
		ScoreTeam1:      input.ScoreTeam1,
		ScoreTeam2:      input.ScoreTeam2,
		DurationMinutes: input.DurationMinutes,
	})
	if err != nil {
		return nil, domain.ErrInternal("complete match", err)
	}
	if match == nil {
		return nil, domain.ErrNotFound("match", input.MatchID)
	}

	if err := s.applyMatchResults(ctx, tx, match, input.WinnerTeamID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.publishMatchCompleted(ctx, match)
	return match, nil
}

// applyMatchResults distributes rating deltas for a completed match. The
// winner team is credited directly and the loser is whichever of the two
// scheduled sides it is not. Participants are updated whether or not a
// winner was declared: a drawn match still counts as played and lost for
// everyone registered.
func (s *AdminService) applyMatchResults(ctx context.Context, db repository.DBTX, match *domain.Match, winnerTeamID *int64) error {
	if winnerTeamID != nil {
		winner := *winnerTeamID
		if err := s.teams.ApplyMatchResult(ctx, db, winner, true); err != nil {
			return domain.ErrInternal("apply team result", err)
		}
		loser := match.Team1ID
		if loser != nil && *loser == winner {
			loser = match.Team2ID
		}
		if loser != nil {
			if err := s.teams.ApplyMatchResult(ctx, db, *loser, false); err != nil {
				return domain.ErrInternal("apply team result", err)
			}
		}
	}

	participants, err := s.matches.ListParticipants(ctx, db, match.ID)
	if err != nil {
		return domain.ErrInternal("list participants", err)
	}
	for _, p := range participants {
		won := winnerTeamID != nil && p.TeamID != nil && *p.TeamID == *winnerTeamID
		if err := s.users.ApplyMatchResult(ctx, db, p.UserID, won); err != nil {
			return domain.ErrInternal("apply player result", err)
		}
	}
	return nil
}

func (s *AdminService) publishMatchCompleted(ctx context.Context, match *domain.Match) {
	payload, err := json.Marshal(match)
	if err != nil {
		s.logger.Error("marshal match event", "error", err)
		return
	}
	key := []byte(fmt.Sprintf("%d", match.ID))
	if err := s.producer.Publish(ctx, TopicMatchCompleted, key, payload); err != nil {
		s.logger.Error("publish match completed", "match_id", match.ID, "error", err)
	}
}

func parseMatchDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", raw)
}
