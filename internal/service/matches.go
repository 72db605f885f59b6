package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/repository"
)

// Join/leave confirmation messages.
const (
	MsgJoinedMatch       = "Successfully joined match"
	MsgAlreadyRegistered = "Already registered for this match"
	MsgLeftMatch         = "Left match successfully"
)

// MatchService implements the public match listing and the join/leave flow.
type MatchService struct {
	pool    *pgxpool.Pool
	matches repository.MatchRepository
}

// NewMatchService creates a new MatchService.
func NewMatchService(pool *pgxpool.Pool, matches repository.MatchRepository) *MatchService {
	return &MatchService{pool: pool, matches: matches}
}

// List returns every match with resolved team names and participant counts.
func (s *MatchService) List(ctx context.Context) ([]domain.Match, error) {
	matches, err := s.matches.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list matches", err)
	}
	return matches, nil
}

// Join registers the calling user for an upcoming match and returns the
// confirmation message. Joining a match twice is not an error: the second
// attempt succeeds with the already-registered message and changes nothing.
func (s *MatchService) Join(ctx context.Context, ident *repository.Identity, matchID int64) (string, error) {
	if matchID == 0 {
		return "", domain.ErrValidation("Match ID required")
	}
	if ident.IsBanned {
		return "", domain.ErrForbidden("You are banned from joining matches")
	}

	status, maxPlayers, err := s.matches.FindForJoin(ctx, s.pool, matchID)
	if err != nil {
		return "", domain.ErrInternal("find match", err)
	}
	if status != domain.MatchStatusUpcoming {
		return "", domain.ErrConflict("Match not available for registration")
	}
	if maxPlayers != nil {
		count, err := s.matches.CountParticipants(ctx, s.pool, matchID)
		if err != nil {
			return "", domain.ErrInternal("count participants", err)
		}
		if count >= *maxPlayers {
			return "", domain.ErrConflict("Match is full")
		}
	}

	added, err := s.matches.AddParticipant(ctx, s.pool, matchID, ident.UserID, ident.TeamID)
	if err != nil {
		return "", domain.ErrInternal("add participant", err)
	}
	if !added {
		return MsgAlreadyRegistered, nil
	}
	return MsgJoinedMatch, nil
}

// Leave withdraws the calling user from a match.
func (s *MatchService) Leave(ctx context.Context, ident *repository.Identity, matchID int64) (string, error) {
	if matchID == 0 {
		return "", domain.ErrValidation("Match ID required")
	}
	if err := s.matches.CancelParticipant(ctx, s.pool, matchID, ident.UserID); err != nil {
		return "", domain.ErrInternal("cancel participant", err)
	}
	return MsgLeftMatch, nil
}
