package handler

import (
	"net/http"

	"github.com/pitchside/platform/internal/service"
)

// RosterHandler handles roster listing, fuzzy player search and per-player
// all-time rating averages.
type RosterHandler struct {
	roster  *service.RosterService
	ratings *service.RatingService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(roster *service.RosterService, ratings *service.RatingService) *RosterHandler {
	return &RosterHandler{roster: roster, ratings: ratings}
}

// Players handles GET /teams/{teamID}/players?q=oli.
func (h *RosterHandler) Players(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuidParam(r, "teamID")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := requireTeamAccess(r, teamID); err != nil {
		RespondError(w, err)
		return
	}

	players, err := h.roster.Players(r.Context(), teamID, r.URL.Query().Get("q"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"players": players})
}

// PlayerAverages handles GET /teams/{teamID}/players/{playerID}/ratings:
// a player's all-time per-category averages across every assessed session.
func (h *RosterHandler) PlayerAverages(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuidParam(r, "teamID")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := requireTeamAccess(r, teamID); err != nil {
		RespondError(w, err)
		return
	}
	playerID, err := uuidParam(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}

	player, err := h.roster.Player(r.Context(), teamID, playerID)
	if err != nil {
		RespondError(w, err)
		return
	}

	averages, err := h.ratings.PlayerAverages(r.Context(), playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"player":   player,
		"averages": averages,
	})
}
