package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pitchside/platform/internal/domain"
)

type lineupRepo struct{}

// NewLineupRepository returns a pgx-backed LineupRepository.
func NewLineupRepository() LineupRepository {
	return &lineupRepo{}
}

func (r *lineupRepo) List(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.LineupEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT session_id, player_id, role, COALESCE(position, ''), shirt_number, is_captain
		FROM lineups
		WHERE session_id = $1
		ORDER BY role ASC, shirt_number ASC NULLS LAST, player_id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list lineup: %w", err)
	}
	defer rows.Close()

	var entries []domain.LineupEntry
	for rows.Next() {
		var e domain.LineupEntry
		if err := rows.Scan(&e.SessionID, &e.PlayerID, &e.Role, &e.Position, &e.ShirtNumber, &e.IsCaptain); err != nil {
			return nil, fmt.Errorf("scan lineup entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Replace deletes and re-inserts within the caller's transaction, so the
// previous committed set is superseded atomically.
func (r *lineupRepo) Replace(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, entries []domain.LineupEntry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM lineups WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear lineup: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO lineups (session_id, player_id, role, position, shirt_number, is_captain)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
			sessionID, e.PlayerID, string(e.Role), e.Position, e.ShirtNumber, e.IsCaptain)
		if err != nil {
			return fmt.Errorf("insert lineup entry: %w", err)
		}
	}
	return nil
}

func (r *lineupRepo) CountStarters(ctx context.Context, db DBTX, sessionID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM lineups WHERE session_id = $1 AND role = 'starter'`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count starters: %w", err)
	}
	return count, nil
}
