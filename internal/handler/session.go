package handler

import (
	"net/http"

	"github.com/pitchside/platform/internal/service"
)

// SessionHandler handles session creation and the assembled session view.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateSessionInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, err)
		return
	}
	if err := requireTeamAccess(r, input.TeamID); err != nil {
		RespondError(w, err)
		return
	}

	created, err := h.sessions.CreateSession(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, created)
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	view, err := h.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, view)
}
