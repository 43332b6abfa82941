package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pitchside/platform/internal/domain"
)

type sessionRepo struct{}

// NewSessionRepository returns a pgx-backed SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepo{}
}

func (r *sessionRepo) Create(ctx context.Context, db DBTX, session *domain.Session) error {
	_, err := db.Exec(ctx, `
		INSERT INTO sessions (id, team_id, session_date, kind, theme, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		session.ID, session.TeamID, session.Date, string(session.Kind), session.Theme, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Session, error) {
	row := db.QueryRow(ctx, `
		SELECT id, team_id, session_date, kind, COALESCE(theme, ''), created_at
		FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

func (r *sessionRepo) ListByTeamAndTheme(ctx context.Context, db DBTX, teamID uuid.UUID, theme string) ([]domain.Session, error) {
	rows, err := db.Query(ctx, `
		SELECT id, team_id, session_date, kind, COALESCE(theme, ''), created_at
		FROM sessions
		WHERE team_id = $1 AND theme = $2
		ORDER BY session_date ASC, created_at ASC`, teamID, theme)
	if err != nil {
		return nil, fmt.Errorf("list sessions by theme: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.TeamID, &s.Date, &s.Kind, &s.Theme, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepo) ListThemes(ctx context.Context, db DBTX, teamIDs []uuid.UUID, allTeams bool) ([]string, error) {
	if !allTeams && len(teamIDs) == 0 {
		return nil, nil
	}
	rows, err := db.Query(ctx, `
		SELECT DISTINCT theme FROM sessions
		WHERE ($2 OR team_id = ANY($1)) AND theme IS NOT NULL AND theme <> ''
		ORDER BY theme ASC`, teamIDs, allTeams)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var themes []string
	for rows.Next() {
		var theme string
		if err := rows.Scan(&theme); err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

func (r *sessionRepo) FindPreviousMatch(ctx context.Context, db DBTX, teamID uuid.UUID, before time.Time) (*domain.Session, error) {
	row := db.QueryRow(ctx, `
		SELECT id, team_id, session_date, kind, COALESCE(theme, ''), created_at
		FROM sessions
		WHERE team_id = $1 AND kind = 'match' AND session_date < $2
		ORDER BY session_date DESC, created_at DESC
		LIMIT 1`, teamID, before)
	return scanSession(row)
}

func (r *sessionRepo) CreateMatchDetails(ctx context.Context, db DBTX, details *domain.MatchDetails) error {
	_, err := db.Exec(ctx, `
		INSERT INTO match_details
		  (session_id, opposition, venue, venue_name, competition, formation, goals_for, goals_against)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)`,
		details.SessionID, details.Opposition, string(details.Venue),
		details.VenueName, details.Competition, details.Formation,
		details.GoalsFor, details.GoalsAgainst)
	if err != nil {
		return fmt.Errorf("insert match details: %w", err)
	}
	return nil
}

func (r *sessionRepo) FindMatchDetails(ctx context.Context, db DBTX, sessionID uuid.UUID) (*domain.MatchDetails, error) {
	row := db.QueryRow(ctx, `
		SELECT session_id, opposition, venue, COALESCE(venue_name, ''),
		       COALESCE(competition, ''), COALESCE(formation, ''), goals_for, goals_against
		FROM match_details WHERE session_id = $1`, sessionID)

	var d domain.MatchDetails
	err := row.Scan(&d.SessionID, &d.Opposition, &d.Venue, &d.VenueName,
		&d.Competition, &d.Formation, &d.GoalsFor, &d.GoalsAgainst)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan match details: %w", err)
	}
	return &d, nil
}

func (r *sessionRepo) UpdateCachedScore(ctx context.Context, db DBTX, sessionID uuid.UUID, score domain.Score) error {
	_, err := db.Exec(ctx, `
		UPDATE match_details SET goals_for = $2, goals_against = $3
		WHERE session_id = $1`, sessionID, score.GoalsFor, score.GoalsAgainst)
	if err != nil {
		return fmt.Errorf("update cached score: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.TeamID, &s.Date, &s.Kind, &s.Theme, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &s, nil
}
