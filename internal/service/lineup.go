package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/lineup"
	"github.com/pitchside/platform/internal/repository"
)

// LineupService commits lineups and serves lineup reads.
type LineupService struct {
	pool     *pgxpool.Pool
	sessions repository.SessionRepository
	lineups  repository.LineupRepository
	teams    repository.TeamRepository
	outbox   repository.OutboxRepository
	logger   *slog.Logger
}

// NewLineupService creates a LineupService.
func NewLineupService(pool *pgxpool.Pool, sessions repository.SessionRepository,
	lineups repository.LineupRepository, teams repository.TeamRepository,
	outbox repository.OutboxRepository, logger *slog.Logger) *LineupService {
	return &LineupService{pool: pool, sessions: sessions, lineups: lineups, teams: teams, outbox: outbox, logger: logger}
}

// LineupView pairs the committed entries with the completeness check.
type LineupView struct {
	Entries      []domain.LineupEntry `json:"entries"`
	StarterCount int                  `json:"starter_count"`
	RequiredSize int                  `json:"required_size"`
	Complete     bool                 `json:"complete"`
}

// Get returns the committed lineup with completeness derived from the
// team's age group.
func (s *LineupService) Get(ctx context.Context, sessionID uuid.UUID) (*LineupView, error) {
	required, err := s.requiredSize(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.lineups.List(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("list lineup", err)
	}

	starters := 0
	for _, e := range entries {
		if e.Role == domain.RoleStarter {
			starters++
		}
	}

	return &LineupView{
		Entries:      entries,
		StarterCount: starters,
		RequiredSize: required,
		Complete:     starters == required,
	}, nil
}

// Replace validates the working lineup through the lineup manager and
// commits it as one transaction: concurrent readers never observe the
// transient empty lineup between delete and insert.
func (s *LineupService) Replace(ctx context.Context, sessionID uuid.UUID, entries []domain.LineupEntry) (*LineupView, error) {
	required, err := s.requiredSize(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Re-run the roster constraints server-side before committing.
	manager := lineup.NewManager(sessionID, required)
	for _, e := range entries {
		if err := manager.AddPlayer(e.PlayerID, e.Role); err != nil {
			return nil, err
		}
		patch := lineup.FieldPatch{ShirtNumber: e.ShirtNumber}
		if e.Position != "" {
			patch.Position = &e.Position
		}
		if e.IsCaptain {
			captain := true
			patch.IsCaptain = &captain
		}
		if err := manager.SetField(e.PlayerID, patch); err != nil {
			return nil, err
		}
	}

	committed := manager.Entries()
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		if err := s.lineups.Replace(ctx, tx, sessionID, committed); err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewLineupReplaced(sessionID, manager.StarterCount()))
	})
	if err != nil {
		return nil, domain.ErrDependency("replace lineup", err)
	}

	return &LineupView{
		Entries:      committed,
		StarterCount: manager.StarterCount(),
		RequiredSize: required,
		Complete:     manager.IsComplete(),
	}, nil
}

// Previous returns the most recent prior match's lineup for the team,
// or an empty view when no prior match exists. Roster membership of the
// returned players is not re-validated.
func (s *LineupService) Previous(ctx context.Context, teamID uuid.UUID, before time.Time) ([]domain.LineupEntry, error) {
	prior, err := s.sessions.FindPreviousMatch(ctx, s.pool, teamID, before)
	if err != nil {
		return nil, domain.ErrDependency("find previous match", err)
	}
	if prior == nil {
		return nil, nil
	}

	entries, err := s.lineups.List(ctx, s.pool, prior.ID)
	if err != nil {
		return nil, domain.ErrDependency("list previous lineup", err)
	}
	return entries, nil
}

func (s *LineupService) requiredSize(ctx context.Context, sessionID uuid.UUID) (int, error) {
	found, err := s.sessions.FindByID(ctx, s.pool, sessionID)
	if err != nil {
		return 0, domain.ErrDependency("find session", err)
	}
	if found == nil {
		return 0, domain.ErrNotFound("session", sessionID.String())
	}

	team, err := s.teams.FindByID(ctx, s.pool, found.TeamID)
	if err != nil {
		return 0, domain.ErrDependency("find team", err)
	}
	if team == nil {
		return 0, domain.ErrNotFound("team", found.TeamID.String())
	}

	return lineup.RequiredSquadSize(team.AgeGroup), nil
}
