package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/matchlog"
	"github.com/pitchside/platform/internal/repository"
	"github.com/pitchside/platform/internal/session"
	"github.com/pitchside/platform/internal/timer"
)

// SessionService creates sessions and assembles the session view.
type SessionService struct {
	pool       *pgxpool.Pool
	sessions   repository.SessionRepository
	events     repository.MatchEventRepository
	outbox     repository.OutboxRepository
	timerStore timer.Store
	logger     *slog.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(pool *pgxpool.Pool, sessions repository.SessionRepository,
	events repository.MatchEventRepository, outbox repository.OutboxRepository,
	timerStore timer.Store, logger *slog.Logger) *SessionService {
	return &SessionService{pool: pool, sessions: sessions, events: events, outbox: outbox, timerStore: timerStore, logger: logger}
}

// CreateSessionInput holds the session creation request.
type CreateSessionInput struct {
	TeamID uuid.UUID           `json:"team_id"`
	Date   time.Time           `json:"date"`
	Kind   domain.SessionKind  `json:"kind"`
	Theme  string              `json:"theme,omitempty"`
	Match  *CreateMatchDetails `json:"match,omitempty"`
}

// CreateMatchDetails holds the match metadata for match-kind sessions.
type CreateMatchDetails struct {
	Opposition  string       `json:"opposition"`
	Venue       domain.Venue `json:"venue"`
	VenueName   string       `json:"venue_name,omitempty"`
	Competition string       `json:"competition,omitempty"`
	Formation   string       `json:"formation,omitempty"`
}

// CreateSession inserts a session and, for matches, its details. A match
// session without details is invalid, so a failed detail insert triggers
// a compensating delete of the just-created session.
func (s *SessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*domain.Session, error) {
	if err := domain.ValidateSessionKind(input.Kind); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, domain.ErrValidation("session date is required")
	}
	if input.Kind == domain.KindMatch {
		if input.Match == nil {
			return nil, domain.ErrValidation("match sessions require match details")
		}
		if input.Match.Opposition == "" {
			return nil, domain.ErrValidation("opposition is required")
		}
		if err := domain.ValidateVenue(input.Match.Venue); err != nil {
			return nil, err
		}
	}

	newSession := &domain.Session{
		ID:        uuid.New(),
		TeamID:    input.TeamID,
		Date:      input.Date,
		Kind:      input.Kind,
		Theme:     input.Theme,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, s.pool, newSession); err != nil {
		return nil, domain.ErrDependency("create session", err)
	}

	if input.Kind == domain.KindMatch {
		details := &domain.MatchDetails{
			SessionID:   newSession.ID,
			Opposition:  input.Match.Opposition,
			Venue:       input.Match.Venue,
			VenueName:   input.Match.VenueName,
			Competition: input.Match.Competition,
			Formation:   input.Match.Formation,
		}
		if err := s.sessions.CreateMatchDetails(ctx, s.pool, details); err != nil {
			s.compensateCreate(ctx, newSession.ID)
			return nil, domain.ErrDependency("create match details", err)
		}
	}

	if err := s.outbox.Insert(ctx, s.pool, domain.NewSessionCreated(newSession)); err != nil {
		s.compensateCreate(ctx, newSession.ID)
		return nil, domain.ErrDependency("announce session", err)
	}

	return newSession, nil
}

// compensateCreate rolls back a half-created session: a session whose
// follow-up writes failed must not survive.
func (s *SessionService) compensateCreate(ctx context.Context, sessionID uuid.UUID) {
	if err := s.sessions.Delete(ctx, s.pool, sessionID); err != nil {
		s.logger.Error("compensating session delete failed",
			"session_id", sessionID, "error", err)
	}
}

// TeamOf resolves the owning team of a session, for access checks.
func (s *SessionService) TeamOf(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	found, err := s.sessions.FindByID(ctx, s.pool, sessionID)
	if err != nil {
		return uuid.Nil, domain.ErrDependency("find session", err)
	}
	if found == nil {
		return uuid.Nil, domain.ErrNotFound("session", sessionID.String())
	}
	return found.TeamID, nil
}

// SessionView is the assembled read model for one session.
type SessionView struct {
	Session *domain.Session      `json:"session"`
	Match   *domain.MatchDetails `json:"match,omitempty"`
	Score   domain.Score         `json:"score"`
	Status  string               `json:"status,omitempty"`
	Timer   timer.State          `json:"timer"`
}

// GetSession assembles the session view: details, derived score,
// status text and the last known timer state.
func (s *SessionService) GetSession(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	found, err := s.sessions.FindByID(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("find session", err)
	}
	if found == nil {
		return nil, domain.ErrNotFound("session", sessionID.String())
	}

	view := &SessionView{Session: found}

	if found.Kind == domain.KindMatch {
		details, err := s.sessions.FindMatchDetails(ctx, s.pool, sessionID)
		if err != nil {
			return nil, domain.ErrDependency("find match details", err)
		}
		view.Match = details

		events, err := s.events.ListBySession(ctx, s.pool, sessionID)
		if err != nil {
			return nil, domain.ErrDependency("list match events", err)
		}
		view.Score = matchlog.DeriveScore(events)

		state, _, err := s.timerStore.Load(ctx, sessionID)
		if err != nil {
			return nil, domain.ErrDependency("load timer state", err)
		}
		view.Timer = state
		view.Status = session.StatusText(state.Started, view.Score)
	}

	return view, nil
}
