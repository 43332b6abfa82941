package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/lineup"
	"github.com/pitchside/platform/internal/matchlog"
	"github.com/pitchside/platform/internal/repository"
	"github.com/pitchside/platform/internal/session"
	"github.com/pitchside/platform/internal/timer"
)

// LiveNotifier pushes freshly recorded events to attached live viewers.
// The in-process WebSocket hub implements it; a nil notifier disables
// fanout.
type LiveNotifier interface {
	BroadcastEvent(sessionID uuid.UUID, event *domain.MatchEvent, score domain.Score)
}

// MatchEventService records match events and serves the timeline.
type MatchEventService struct {
	pool     *pgxpool.Pool
	sessions repository.SessionRepository
	lineups  repository.LineupRepository
	teams    repository.TeamRepository
	events   repository.MatchEventRepository
	outbox   repository.OutboxRepository
	timer    *timer.Engine
	notifier LiveNotifier
	logger   *slog.Logger
}

// NewMatchEventService creates a MatchEventService.
func NewMatchEventService(pool *pgxpool.Pool, sessions repository.SessionRepository,
	lineups repository.LineupRepository, teams repository.TeamRepository,
	events repository.MatchEventRepository, outbox repository.OutboxRepository,
	timerEngine *timer.Engine, notifier LiveNotifier, logger *slog.Logger) *MatchEventService {
	return &MatchEventService{
		pool: pool, sessions: sessions, lineups: lineups, teams: teams,
		events: events, outbox: outbox, timer: timerEngine, notifier: notifier, logger: logger,
	}
}

// Record validates and appends one match event. Events are refused until
// the committed lineup is complete. A negative minute is stamped with the
// timer's current minute. The event insert, the outbox drafts and the
// cached-score refresh commit in one transaction; nothing is partially
// logged.
func (s *MatchEventService) Record(ctx context.Context, sessionID uuid.UUID, event domain.MatchEvent) (*domain.MatchEvent, error) {
	found, err := s.sessions.FindByID(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("find session", err)
	}
	if found == nil {
		return nil, domain.ErrNotFound("session", sessionID.String())
	}
	if found.Kind != domain.KindMatch {
		return nil, domain.ErrValidation("events can only be recorded for match sessions")
	}

	team, err := s.teams.FindByID(ctx, s.pool, found.TeamID)
	if err != nil {
		return nil, domain.ErrDependency("find team", err)
	}
	if team == nil {
		return nil, domain.ErrNotFound("team", found.TeamID.String())
	}

	starters, err := s.lineups.CountStarters(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("count starters", err)
	}
	if err := session.CheckLineup(starters, lineup.RequiredSquadSize(team.AgeGroup)); err != nil {
		return nil, err
	}

	if event.Minute < 0 {
		state, err := s.timer.Current(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		session.StampMinute(&event, state.Minute)
	}

	event.SessionID = sessionID
	if err := matchlog.Validate(&event); err != nil {
		return nil, err
	}

	var stored *domain.MatchEvent
	var score domain.Score
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		stored, score, err = s.recordInTx(ctx, tx, &event)
		return err
	})
	if err != nil {
		return nil, domain.ErrDependency("record match event", err)
	}

	if s.notifier != nil {
		s.notifier.BroadcastEvent(sessionID, stored, score)
	}
	return stored, nil
}

// recordInTx appends the event and its outbox drafts against one
// transaction. The returned score is log-derived for every event type:
// cards and substitutions broadcast the real score, not a zero value.
// Only goals refresh the display cache and emit a score-changed event.
func (s *MatchEventService) recordInTx(ctx context.Context, db repository.DBTX, event *domain.MatchEvent) (*domain.MatchEvent, domain.Score, error) {
	stored, err := s.events.Insert(ctx, db, event)
	if err != nil {
		return nil, domain.Score{}, err
	}
	if err := s.outbox.Insert(ctx, db, domain.NewMatchEventRecorded(stored)); err != nil {
		return nil, domain.Score{}, err
	}

	all, err := s.events.ListBySession(ctx, db, event.SessionID)
	if err != nil {
		return nil, domain.Score{}, err
	}
	score := matchlog.DeriveScore(all)

	if stored.Type != domain.EventGoal {
		return stored, score, nil
	}

	// Refresh the display cache from the derived score, in the same
	// transaction: the cache follows the log, never leads it.
	if err := s.sessions.UpdateCachedScore(ctx, db, event.SessionID, score); err != nil {
		return nil, domain.Score{}, err
	}
	if err := s.outbox.Insert(ctx, db, domain.NewScoreChanged(event.SessionID, score)); err != nil {
		return nil, domain.Score{}, err
	}
	return stored, score, nil
}

// Timeline returns the session's events ordered by minute with the
// insertion-order tie-break.
func (s *MatchEventService) Timeline(ctx context.Context, sessionID uuid.UUID) ([]domain.MatchEvent, error) {
	events, err := s.events.ListBySession(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("list match events", err)
	}
	return events, nil
}

// ScoreSummary is the derived score with discipline counts.
type ScoreSummary struct {
	domain.Score
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}

// Score derives the live score and discipline record from the event log.
func (s *MatchEventService) Score(ctx context.Context, sessionID uuid.UUID) (*ScoreSummary, error) {
	events, err := s.events.ListBySession(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("list match events", err)
	}

	yellows, reds := matchlog.Discipline(events)
	return &ScoreSummary{
		Score:       matchlog.DeriveScore(events),
		YellowCards: yellows,
		RedCards:    reds,
	}, nil
}
