package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/strikeball/platform/internal/domain"
)

type teamRepo struct{}

// NewTeamRepository returns a pgx-backed TeamRepository.
func NewTeamRepository() TeamRepository {
	return &teamRepo{}
}

func (r *teamRepo) Create(ctx context.Context, db DBTX, name, description string) (*domain.Team, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO teams (name, description)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, name, COALESCE(description, ''), rating, matches_played, matches_won`,
		name, description)
	return scanTeam(row)
}

func (r *teamRepo) ListByRating(ctx context.Context, db DBTX) ([]domain.Team, error) {
	rows, err := db.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), rating, matches_played, matches_won
		FROM teams ORDER BY rating DESC`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *teamRepo) UpsertMember(ctx context.Context, db DBTX, teamID, userID int64, role string) (*domain.TeamMember, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING team_id, user_id, role`, teamID, userID, role)

	m := &domain.TeamMember{}
	if err := row.Scan(&m.TeamID, &m.UserID, &m.Role); err != nil {
		return nil, fmt.Errorf("upsert member: %w", err)
	}
	return m, nil
}

func (r *teamRepo) ApplyMatchResult(ctx context.Context, db DBTX, teamID int64, won bool) error {
	delta := domain.TeamLossRatingDelta
	wonInc := 0
	if won {
		delta = domain.TeamWinRatingDelta
		wonInc = 1
	}
	_, err := db.Exec(ctx, `
		UPDATE teams
		SET matches_played = matches_played + 1,
		    matches_won = matches_won + $2,
		    rating = rating + $3
		WHERE id = $1`, teamID, wonInc, delta)
	if err != nil {
		return fmt.Errorf("apply team result: %w", err)
	}
	return nil
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	t := &domain.Team{}
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Rating, &t.MatchesPlayed, &t.MatchesWon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan team: %w", err)
	}
	return t, nil
}
