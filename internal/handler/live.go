package handler

import (
	"net/http"

	"github.com/pitchside/platform/internal/infra"
	"github.com/pitchside/platform/internal/service"
)

// LiveHandler upgrades viewers onto the session's live feed.
type LiveHandler struct {
	sessions *service.SessionService
	hub      *infra.LiveHub
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(sessions *service.SessionService, hub *infra.LiveHub) *LiveHandler {
	return &LiveHandler{sessions: sessions, hub: hub}
}

// Subscribe handles GET /sessions/{id}/live. The connection receives
// match events and timer snapshots as they happen; nothing is pushed for
// past events.
func (h *LiveHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	h.hub.Serve(w, r, sessionID)
}
