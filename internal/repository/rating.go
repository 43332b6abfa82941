package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
)

type ratingRepo struct{}

// NewRatingRepository returns a pgx-backed RatingRepository.
func NewRatingRepository() RatingRepository {
	return &ratingRepo{}
}

// Upsert is keyed by (session, player, coach, category): a coach
// resubmitting overwrites their own entry and never another coach's.
func (r *ratingRepo) Upsert(ctx context.Context, db DBTX, entry domain.RatingEntry) error {
	_, err := db.Exec(ctx, `
		INSERT INTO ratings (session_id, player_id, coach_id, category, value, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (session_id, player_id, coach_id, category)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		entry.SessionID, entry.PlayerID, entry.CoachID, string(entry.Category), entry.Value)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

func (r *ratingRepo) ListBySession(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.RatingEntry, error) {
	return r.list(ctx, db, `WHERE session_id = $1`, sessionID)
}

func (r *ratingRepo) ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.RatingEntry, error) {
	return r.list(ctx, db, `WHERE player_id = $1`, playerID)
}

func (r *ratingRepo) list(ctx context.Context, db DBTX, where string, arg interface{}) ([]domain.RatingEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT session_id, player_id, coach_id, category, value, updated_at
		FROM ratings `+where+` ORDER BY player_id, category`, arg)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var entries []domain.RatingEntry
	for rows.Next() {
		var e domain.RatingEntry
		if err := rows.Scan(&e.SessionID, &e.PlayerID, &e.CoachID, &e.Category, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
