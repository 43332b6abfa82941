package handler

import (
	"net/http"

	"github.com/pitchside/platform/internal/auth"
	"github.com/pitchside/platform/internal/service"
)

// TrendHandler handles the theme catalogue, cross-session trend reports
// and relative-age quartile buckets.
type TrendHandler struct {
	trends *service.TrendService
}

// NewTrendHandler creates a new TrendHandler.
func NewTrendHandler(trends *service.TrendService) *TrendHandler {
	return &TrendHandler{trends: trends}
}

// Themes handles GET /themes: the distinct theme labels across every team
// the caller may see.
func (h *TrendHandler) Themes(w http.ResponseWriter, r *http.Request) {
	permitted, all := auth.PermittedTeams(r.Context())

	themes, err := h.trends.Themes(r.Context(), permitted, all)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"themes": themes})
}

// Trends handles GET /teams/{teamID}/trends?theme=shooting.
func (h *TrendHandler) Trends(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuidParam(r, "teamID")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := requireTeamAccess(r, teamID); err != nil {
		RespondError(w, err)
		return
	}

	report, err := h.trends.SessionSummaries(r.Context(), teamID, r.URL.Query().Get("theme"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, report)
}

// RelativeAge handles GET /teams/{teamID}/raq.
func (h *TrendHandler) RelativeAge(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuidParam(r, "teamID")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := requireTeamAccess(r, teamID); err != nil {
		RespondError(w, err)
		return
	}

	buckets, err := h.trends.RelativeAgeBuckets(r.Context(), teamID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"quartiles": buckets})
}
