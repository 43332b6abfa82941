package handler

import (
	"net/http"
	"time"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/service"
)

// LineupHandler handles lineup reads, atomic replacement and reuse of a
// previous match's lineup.
type LineupHandler struct {
	sessions *service.SessionService
	lineups  *service.LineupService
}

// NewLineupHandler creates a new LineupHandler.
func NewLineupHandler(sessions *service.SessionService, lineups *service.LineupService) *LineupHandler {
	return &LineupHandler{sessions: sessions, lineups: lineups}
}

// Get handles GET /sessions/{id}/lineup.
func (h *LineupHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	view, err := h.lineups.Get(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, view)
}

// replaceLineupRequest is the body of PUT /sessions/{id}/lineup.
type replaceLineupRequest struct {
	Entries []domain.LineupEntry `json:"entries"`
}

// Replace handles PUT /sessions/{id}/lineup. The whole selection is
// validated and swapped in one transaction.
func (h *LineupHandler) Replace(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req replaceLineupRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}

	view, err := h.lineups.Replace(r.Context(), sessionID, req.Entries)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, view)
}

// Previous handles GET /teams/{teamID}/lineup/previous?before=2026-05-01.
func (h *LineupHandler) Previous(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuidParam(r, "teamID")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := requireTeamAccess(r, teamID); err != nil {
		RespondError(w, err)
		return
	}

	before := time.Now()
	if raw := r.URL.Query().Get("before"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(w, domain.ErrValidation("before must be YYYY-MM-DD"))
			return
		}
		before = parsed
	}

	entries, err := h.lineups.Previous(r.Context(), teamID, before)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
