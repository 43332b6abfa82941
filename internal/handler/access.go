package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pitchside/platform/internal/auth"
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/service"
)

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrValidation("invalid " + name)
	}
	return id, nil
}

// coachIDFromRequest resolves the acting coach's UUID from auth context,
// mapping failures to the boundary's error taxonomy.
func coachIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := auth.CoachIDFromContext(r.Context())
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized("no coach identity in token")
	}
	return id, nil
}

// requireTeamAccess rejects callers whose token does not grant the team.
func requireTeamAccess(r *http.Request, teamID uuid.UUID) error {
	if !auth.CanAccessTeam(r.Context(), teamID) {
		return domain.ErrForbidden("no access to team " + teamID.String())
	}
	return nil
}

// requireSessionAccess parses {id}, resolves the session's team and checks
// the caller may see it. Shared by every session-scoped handler.
func requireSessionAccess(r *http.Request, sessions *service.SessionService) (uuid.UUID, error) {
	sessionID, err := uuidParam(r, "id")
	if err != nil {
		return uuid.Nil, err
	}
	teamID, err := sessions.TeamOf(r.Context(), sessionID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := requireTeamAccess(r, teamID); err != nil {
		return uuid.Nil, err
	}
	return sessionID, nil
}
