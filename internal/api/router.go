package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyeok-dev/dicearena/internal/api/handler"
	"github.com/hyeok-dev/dicearena/internal/api/middleware"
	"github.com/hyeok-dev/dicearena/internal/api/response"
	"github.com/hyeok-dev/dicearena/internal/services/match"
	"github.com/hyeok-dev/dicearena/internal/services/session"
	"github.com/hyeok-dev/dicearena/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Coordinator *session.Coordinator
	Registry    *match.Registry
	Storage     storage.Storage
	WSHandler   http.Handler
}

// NewRouter creates a new router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	matchmakingHandler := handler.NewMatchmakingHandler(cfg.Coordinator)
	matchHandler := handler.NewMatchHandler(cfg.Registry, cfg.Storage)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/matchmaking/status/{playerId}", matchmakingHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/matches/{roomId}", matchHandler.Get).Methods(http.MethodGet)

	r.Handle("/ws", cfg.WSHandler)

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
