package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/strikeball/platform/internal/domain"
)

type userRepo struct{}

// NewUserRepository returns a pgx-backed UserRepository.
func NewUserRepository() UserRepository {
	return &userRepo{}
}

func (r *userRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AuthUser, error) {
	row := db.QueryRow(ctx, `
		SELECT id, email, password_hash, name, is_banned, is_admin
		FROM users WHERE email = $1`, email)

	u := &domain.AuthUser{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsBanned, &u.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan auth user: %w", err)
	}
	return u, nil
}

func (r *userRepo) Create(ctx context.Context, db DBTX, email, passwordHash, name, nickname, team string) (*domain.User, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, nickname, team)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id, email, name, COALESCE(nickname, ''), COALESCE(team, ''), COALESCE(avatar_url, '')`,
		email, passwordHash, name, nickname, team)
	return scanUser(row)
}

func (r *userRepo) UpdateAvatar(ctx context.Context, db DBTX, userID int64, avatarURL string) (*domain.User, error) {
	row := db.QueryRow(ctx, `
		UPDATE users SET avatar_url = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, name, COALESCE(nickname, ''), COALESCE(team, ''), COALESCE(avatar_url, '')`,
		userID, avatarURL)
	return scanUser(row)
}

func (r *userRepo) SetBanned(ctx context.Context, db DBTX, userID int64, banned bool) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		UPDATE users SET is_banned = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, rating, matches_played, matches_won, COALESCE(team, ''), is_banned, is_admin`,
		userID, banned)
	return scanPlayer(row)
}

func (r *userRepo) SetTeamName(ctx context.Context, db DBTX, userID, teamID int64) error {
	_, err := db.Exec(ctx, `
		UPDATE users SET team = (SELECT name FROM teams WHERE id = $1), updated_at = now()
		WHERE id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("set team name: %w", err)
	}
	return nil
}

func (r *userRepo) ListByRating(ctx context.Context, db DBTX) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT id, name, email, rating, matches_played, matches_won, COALESCE(team, ''), is_banned, is_admin
		FROM users ORDER BY rating DESC`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *userRepo) ApplyMatchResult(ctx context.Context, db DBTX, userID int64, won bool) error {
	delta := domain.PlayerLossRatingDelta
	wonInc := 0
	if won {
		delta = domain.PlayerWinRatingDelta
		wonInc = 1
	}
	_, err := db.Exec(ctx, `
		UPDATE users
		SET matches_played = matches_played + 1,
		    matches_won = matches_won + $2,
		    rating = rating + $3,
		    updated_at = now()
		WHERE id = $1`, userID, wonInc, delta)
	if err != nil {
		return fmt.Errorf("apply player result: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Nickname, &u.Team, &u.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	p := &domain.Player{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Rating, &p.MatchesPlayed, &p.MatchesWon, &p.Team, &p.IsBanned, &p.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return p, nil
}
