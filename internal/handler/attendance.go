package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/service"
)

// AttendanceHandler handles session attendance reads and upserts.
type AttendanceHandler struct {
	sessions   *service.SessionService
	attendance *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(sessions *service.SessionService, attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{sessions: sessions, attendance: attendance}
}

// List handles GET /sessions/{id}/attendance.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	records, err := h.attendance.List(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"attendance": records})
}

// markAttendanceRequest is the body of PUT /sessions/{id}/attendance.
type markAttendanceRequest struct {
	PlayerID uuid.UUID               `json:"player_id"`
	Status   domain.AttendanceStatus `json:"status"`
}

// Mark handles PUT /sessions/{id}/attendance.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionAccess(r, h.sessions)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req markAttendanceRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if req.PlayerID == uuid.Nil {
		RespondError(w, domain.ErrValidation("player_id is required"))
		return
	}

	if err := h.attendance.Mark(r.Context(), sessionID, req.PlayerID, req.Status); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
