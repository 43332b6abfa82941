package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/service"
)

// RatingHandler handles per-coach rating entry and the pooled summaries.
type RatingHandler struct {
	sessions *service.SessionService
	ratings  *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(sessions *service.SessionService, ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{sessions: sessions, ratings: ratings}
}

// Get handles GET /sessions/{id}/ratings: the acting coach's own entries
// plus their personal per-category averages.
func (h *RatingHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}
	coachID, err := coachIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	entries, averages, err := h.ratings.CoachView(r.Context(), sessionID, coachID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"entries":  entries,
		"averages": averages,
	})
}

// upsertRatingRequest is the body of PUT /sessions/{id}/ratings: one
// player's category values as assessed by the acting coach. Zero means
// not assessed.
type upsertRatingRequest struct {
	PlayerID uuid.UUID               `json:"player_id"`
	Values   map[domain.Category]int `json:"values"`
}

// Upsert handles PUT /sessions/{id}/ratings.
func (h *RatingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}
	coachID, err := coachIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req upsertRatingRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if req.PlayerID == uuid.Nil {
		RespondError(w, domain.ErrValidation("player_id is required"))
		return
	}

	if err := h.ratings.Upsert(r.Context(), sessionID, coachID, req.PlayerID, req.Values); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// Summary handles GET /sessions/{id}/ratings/summary: the pooled
// two-level aggregate across all coaches.
func (h *RatingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	summary, err := h.ratings.SessionSummary(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}
