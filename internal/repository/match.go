package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/strikeball/platform/internal/domain"
)

type matchRepo struct{}

// NewMatchRepository returns a pgx-backed MatchRepository.
func NewMatchRepository() MatchRepository {
	return &matchRepo{}
}

func (r *matchRepo) Create(ctx context.Context, db DBTX, params CreateMatchParams) (*domain.Match, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO matches (title, match_type, match_date, max_players, team1_id, team2_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, match_type, match_date, status, max_players,
		          team1_id, team2_id, winner_team_id, score_team1, score_team2, duration_minutes`,
		params.Title, params.MatchType, params.MatchDate,
		params.MaxPlayers, params.Team1ID, params.Team2ID, params.CreatedBy)
	return scanMatchRow(row)
}

func (r *matchRepo) Complete(ctx context.Context, db DBTX, params CompleteMatchParams) (*domain.Match, error) {
	row := db.QueryRow(ctx, `
		UPDATE matches
		SET status = $2, winner_team_id = $3, score_team1 = $4, score_team2 = $5, duration_minutes = $6
		WHERE id = $1
		RETURNING id, title, match_type, match_date, status, max_players,
		          team1_id, team2_id, winner_team_id, score_team1, score_team2, duration_minutes`,
		params.MatchID, domain.MatchStatusCompleted, params.WinnerTeamID,
		params.ScoreTeam1, params.ScoreTeam2, params.DurationMinutes)
	return scanMatchRow(row)
}

func (r *matchRepo) List(ctx context.Context, db DBTX) ([]domain.Match, error) {
	rows, err := db.Query(ctx, `
		SELECT m.id, m.title, m.match_type, m.match_date, m.status, m.max_players,
		       m.team1_id, m.team2_id, m.winner_team_id, m.score_team1, m.score_team2, m.duration_minutes,
		       COALESCE(t1.name, ''), COALESCE(t2.name, ''), COALESCE(tw.name, ''),
		       COUNT(DISTINCT mp.user_id)
		FROM matches m
		LEFT JOIN teams t1 ON m.team1_id = t1.id
		LEFT JOIN teams t2 ON m.team2_id = t2.id
		LEFT JOIN teams tw ON m.winner_team_id = tw.id
		LEFT JOIN match_participants mp ON m.id = mp.match_id
		GROUP BY m.id, t1.name, t2.name, tw.name
		ORDER BY m.match_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := []domain.Match{}
	for rows.Next() {
		var m domain.Match
		var date time.Time
		err := rows.Scan(&m.ID, &m.Title, &m.MatchType, &date, &m.Status, &m.MaxPlayers,
			&m.Team1ID, &m.Team2ID, &m.WinnerTeamID, &m.ScoreTeam1, &m.ScoreTeam2, &m.DurationMinutes,
			&m.Team1Name, &m.Team2Name, &m.WinnerName, &m.RegisteredPlayers)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.MatchDate = date.UTC().Format(time.RFC3339)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *matchRepo) FindForJoin(ctx context.Context, db DBTX, matchID int64) (string, *int, error) {
	var status string
	var maxPlayers *int
	err := db.QueryRow(ctx, `SELECT status, max_players FROM matches WHERE id = $1`, matchID).
		Scan(&status, &maxPlayers)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("find match: %w", err)
	}
	return status, maxPlayers, nil
}

func (r *matchRepo) CountParticipants(ctx context.Context, db DBTX, matchID int64) (int, error) {
	var count int
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM match_participants WHERE match_id = $1`, matchID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}

func (r *matchRepo) AddParticipant(ctx context.Context, db DBTX, matchID, userID int64, teamID *int64) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO match_participants (match_id, user_id, team_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id, user_id) DO NOTHING`, matchID, userID, teamID)
	if err != nil {
		return false, fmt.Errorf("add participant: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *matchRepo) CancelParticipant(ctx context.Context, db DBTX, matchID, userID int64) error {
	_, err := db.Exec(ctx, `
		UPDATE match_participants SET status = 'cancelled'
		WHERE match_id = $1 AND user_id = $2`, matchID, userID)
	if err != nil {
		return fmt.Errorf("cancel participant: %w", err)
	}
	return nil
}

func (r *matchRepo) ListParticipants(ctx context.Context, db DBTX, matchID int64) ([]Participant, error) {
	rows, err := db.Query(ctx, `
		SELECT user_id, team_id FROM match_participants WHERE match_id = $1`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.UserID, &p.TeamID); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func scanMatchRow(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	var date time.Time
	err := row.Scan(&m.ID, &m.Title, &m.MatchType, &date, &m.Status, &m.MaxPlayers,
		&m.Team1ID, &m.Team2ID, &m.WinnerTeamID, &m.ScoreTeam1, &m.ScoreTeam2, &m.DurationMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan match: %w", err)
	}
	m.MatchDate = date.UTC().Format(time.RFC3339)
	return &m, nil
}
