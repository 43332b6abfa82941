package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pitchside/platform/internal/service"
	"github.com/pitchside/platform/internal/timer"
)

// TimerBroadcaster pushes timer snapshots to live viewers. May be nil.
type TimerBroadcaster interface {
	BroadcastTimer(sessionID uuid.UUID, state any)
}

// TimerHandler handles the persisted match timer: reading the clock and
// applying named transitions.
type TimerHandler struct {
	sessions *service.SessionService
	engine   *timer.Engine
	ticker   *timer.Ticker
	live     TimerBroadcaster

	// tick loops outlive the request, so they run off the server's
	// base context rather than the request's.
	baseCtx context.Context
}

// NewTimerHandler creates a new TimerHandler.
func NewTimerHandler(baseCtx context.Context, sessions *service.SessionService,
	engine *timer.Engine, ticker *timer.Ticker, live TimerBroadcaster) *TimerHandler {
	return &TimerHandler{
		sessions: sessions,
		engine:   engine,
		ticker:   ticker,
		live:     live,
		baseCtx:  baseCtx,
	}
}

// Get handles GET /sessions/{id}/timer.
func (h *TimerHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	state, err := h.engine.Current(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, state)
}

// Apply handles POST /sessions/{id}/timer/{action}.
func (h *TimerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	action := timer.Action(chi.URLParam(r, "action"))
	state, err := h.engine.Apply(r.Context(), sessionID, action)
	if err != nil {
		RespondError(w, err)
		return
	}

	switch action {
	case timer.ActionStart, timer.ActionSecondHalf:
		h.ticker.Ensure(h.baseCtx, sessionID)
	case timer.ActionPause, timer.ActionHalfTime, timer.ActionFullTime, timer.ActionReset:
		h.ticker.Stop(sessionID)
	}

	if h.live != nil {
		h.live.BroadcastTimer(sessionID, state)
	}
	RespondJSON(w, http.StatusOK, state)
}
