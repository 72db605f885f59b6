package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/strikeball/platform/internal/domain"
)

type sessionRepo struct{}

// NewSessionRepository returns a pgx-backed SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepo{}
}

func (r *sessionRepo) Create(ctx context.Context, db DBTX, userID int64, token string, expiresAt time.Time) error {
	_, err := db.Exec(ctx, `
		INSERT INTO user_sessions (user_id, session_token, expires_at)
		VALUES ($1, $2, $3)`, userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ResolveUser(ctx context.Context, db DBTX, token string) (*domain.User, error) {
	row := db.QueryRow(ctx, `
		SELECT u.id, u.email, u.name, COALESCE(u.nickname, ''), COALESCE(u.team, ''), COALESCE(u.avatar_url, '')
		FROM users u
		JOIN user_sessions s ON u.id = s.user_id
		WHERE s.session_token = $1 AND s.expires_at > now()`, token)
	return scanUser(row)
}

func (r *sessionRepo) ResolveIdentity(ctx context.Context, db DBTX, token string) (*Identity, error) {
	row := db.QueryRow(ctx, `
		SELECT u.id, u.is_admin, u.is_banned, tm.team_id
		FROM users u
		JOIN user_sessions s ON u.id = s.user_id
		LEFT JOIN team_members tm ON u.id = tm.user_id
		WHERE s.session_token = $1 AND s.expires_at > now()`, token)

	ident := &Identity{}
	err := row.Scan(&ident.UserID, &ident.IsAdmin, &ident.IsBanned, &ident.TeamID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan identity: %w", err)
	}
	return ident, nil
}
