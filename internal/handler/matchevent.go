package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/guard"
	"github.com/pitchside/platform/internal/service"
)

// MatchEventHandler handles the match timeline, event recording and the
// derived score.
type MatchEventHandler struct {
	sessions    *service.SessionService
	events      *service.MatchEventService
	idempotency *guard.IdempotencyGuard
	observe     func(eventType string)
}

// NewMatchEventHandler creates a new MatchEventHandler. observe counts
// recorded events for metrics and may be nil.
func NewMatchEventHandler(sessions *service.SessionService, events *service.MatchEventService,
	idempotency *guard.IdempotencyGuard, observe func(eventType string)) *MatchEventHandler {
	return &MatchEventHandler{sessions: sessions, events: events, idempotency: idempotency, observe: observe}
}

// Timeline handles GET /sessions/{id}/events.
func (h *MatchEventHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	events, err := h.events.Timeline(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"events": events})
}

// recordEventRequest is the body of POST /sessions/{id}/events. Minute is
// optional; when absent the event is stamped with the timer's current
// minute.
type recordEventRequest struct {
	Type           domain.MatchEventType `json:"event_type"`
	Minute         *int                  `json:"minute,omitempty"`
	PlayerID       *uuid.UUID            `json:"player_id,omitempty"`
	GoalType       domain.GoalType       `json:"goal_type,omitempty"`
	GoalContext    domain.GoalContext    `json:"goal_context,omitempty"`
	IsOwnGoal      bool                  `json:"is_own_goal,omitempty"`
	AssistPlayerID *uuid.UUID            `json:"assist_player_id,omitempty"`
	PlayerInID     *uuid.UUID            `json:"player_in_id,omitempty"`
	PlayerOutID    *uuid.UUID            `json:"player_out_id,omitempty"`
	SubReason      domain.SubReason      `json:"sub_reason,omitempty"`
	CardReason     string                `json:"card_reason,omitempty"`
}

// Record handles POST /sessions/{id}/events.
func (h *MatchEventHandler) Record(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req recordEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}

	// Retried submissions carry the same Idempotency-Key; only the
	// first one is recorded.
	idemKey := r.Header.Get("Idempotency-Key")
	if res := h.idempotency.Check(r.Context(), idemKey); !res.Allowed {
		RespondError(w, domain.ErrConflict(res.Reason))
		return
	}

	minute := -1 // stamp from the running timer
	if req.Minute != nil {
		minute = *req.Minute
	}

	event := domain.MatchEvent{
		SessionID:      sessionID,
		Type:           req.Type,
		Minute:         minute,
		PlayerID:       req.PlayerID,
		GoalType:       req.GoalType,
		GoalContext:    req.GoalContext,
		IsOwnGoal:      req.IsOwnGoal,
		AssistPlayerID: req.AssistPlayerID,
		PlayerInID:     req.PlayerInID,
		PlayerOutID:    req.PlayerOutID,
		SubReason:      req.SubReason,
		CardReason:     req.CardReason,
	}

	stored, err := h.events.Record(r.Context(), sessionID, event)
	if err != nil {
		h.idempotency.Remove(idemKey)
		RespondError(w, err)
		return
	}
	if h.observe != nil {
		h.observe(string(stored.Type))
	}
	RespondJSON(w, http.StatusCreated, stored)
}

// Score handles GET /sessions/{id}/score.
func (h *MatchEventHandler) Score(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	summary, err := h.events.Score(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}
