package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/rating"
	"github.com/pitchside/platform/internal/repository"
)

// RatingService records development ratings and serves aggregates.
type RatingService struct {
	pool     *pgxpool.Pool
	sessions repository.SessionRepository
	ratings  repository.RatingRepository
	logger   *slog.Logger
}

// NewRatingService creates a RatingService.
func NewRatingService(pool *pgxpool.Pool, sessions repository.SessionRepository,
	ratings repository.RatingRepository, logger *slog.Logger) *RatingService {
	return &RatingService{pool: pool, sessions: sessions, ratings: ratings, logger: logger}
}

// Upsert writes one player's category values for the acting coach. The
// coach identity is always passed explicitly, resolved once by the auth
// boundary, never re-derived here. Values are validated before any row
// is written, and all rows commit in one transaction: a failed
// submission leaves no partial category set behind.
func (s *RatingService) Upsert(ctx context.Context, sessionID, actingCoachID, playerID uuid.UUID,
	values map[domain.Category]int) error {
	if actingCoachID == uuid.Nil {
		return domain.ErrUnauthorized("acting coach is required")
	}
	if len(values) == 0 {
		return domain.ErrValidation("at least one category value is required")
	}
	for category, value := range values {
		if !domain.ValidCategory(category) {
			return domain.ErrValidation("unknown rating category: " + string(category))
		}
		if err := domain.ValidateRatingValue(value); err != nil {
			return err
		}
	}

	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return s.writeEntries(ctx, tx, sessionID, actingCoachID, playerID, values)
	})
	if err != nil {
		return domain.ErrDependency("upsert ratings", err)
	}
	return nil
}

// writeEntries persists the category rows for one submission. Runs
// inside Upsert's transaction.
func (s *RatingService) writeEntries(ctx context.Context, db repository.DBTX,
	sessionID, coachID, playerID uuid.UUID, values map[domain.Category]int) error {
	for category, value := range values {
		entry := domain.RatingEntry{
			SessionID: sessionID,
			PlayerID:  playerID,
			CoachID:   coachID,
			Category:  category,
			Value:     value,
		}
		if err := s.ratings.Upsert(ctx, db, entry); err != nil {
			return err
		}
	}
	return nil
}

// CoachView returns the session's entries and averages scoped to one
// coach: other coaches' scores never leak into a coach's own view.
func (s *RatingService) CoachView(ctx context.Context, sessionID, coachID uuid.UUID) ([]domain.RatingEntry, rating.CategoryAverages, error) {
	entries, err := s.ratings.ListBySession(ctx, s.pool, sessionID)
	if err != nil {
		return nil, nil, domain.ErrDependency("list ratings", err)
	}

	scoped := entries[:0:0]
	for _, e := range entries {
		if e.CoachID == coachID {
			scoped = append(scoped, e)
		}
	}
	return scoped, rating.CoachView(entries, coachID), nil
}

// SessionSummary returns the pooled two-level session aggregate across
// all coaches.
func (s *RatingService) SessionSummary(ctx context.Context, sessionID uuid.UUID) (*rating.SessionAggregate, error) {
	found, err := s.sessions.FindByID(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("find session", err)
	}
	if found == nil {
		return nil, domain.ErrNotFound("session", sessionID.String())
	}

	entries, err := s.ratings.ListBySession(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("list ratings", err)
	}

	agg := rating.SessionSummary(*found, entries)
	return &agg, nil
}

// PlayerAverages pools one player's entries across all sessions and
// coaches.
func (s *RatingService) PlayerAverages(ctx context.Context, playerID uuid.UUID) (rating.CategoryAverages, error) {
	entries, err := s.ratings.ListByPlayer(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrDependency("list player ratings", err)
	}
	return rating.PlayerAverages(entries), nil
}
