package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyeok-dev/dicearena/internal/api/apierr"
	"github.com/hyeok-dev/dicearena/internal/api/response"
	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/services/match"
	"github.com/hyeok-dev/dicearena/internal/storage"
)

// MatchHandler serves match snapshots and archived results
type MatchHandler struct {
	registry *match.Registry
	storage  storage.Storage
}

// NewMatchHandler creates a match handler
func NewMatchHandler(registry *match.Registry, store storage.Storage) *MatchHandler {
	return &MatchHandler{registry: registry, storage: store}
}

// Get handles GET /api/matches/{roomId}. Live matches are served from the
// registry; dissolved matches fall back to the archived result.
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["roomId"])

	m, err := h.registry.GetByRoom(roomID)
	if err == nil {
		response.JSON(w, http.StatusOK, response.MatchFromModel(m))
		return
	}
	if !errors.Is(err, model.ErrMatchNotFound) {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.storage.GetMatchResult(r.Context(), roomID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ArchivedMatchFromModel(result))
}
