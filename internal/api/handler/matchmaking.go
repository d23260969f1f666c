package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyeok-dev/dicearena/internal/api/apierr"
	"github.com/hyeok-dev/dicearena/internal/api/response"
	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/services/session"
)

// MatchmakingHandler serves matchmaking status lookups
type MatchmakingHandler struct {
	coordinator *session.Coordinator
}

// NewMatchmakingHandler creates a matchmaking handler
func NewMatchmakingHandler(coordinator *session.Coordinator) *MatchmakingHandler {
	return &MatchmakingHandler{coordinator: coordinator}
}

// Status handles GET /api/matchmaking/status/{playerId}
func (h *MatchmakingHandler) Status(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["playerId"])
	if playerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("playerId is required"))
		return
	}

	status := h.coordinator.Status(r.Context(), playerID)
	response.JSON(w, http.StatusOK, status)
}
