package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/hyeok-dev/dicearena/internal/dependencies/clock"
	"github.com/hyeok-dev/dicearena/internal/dependencies/random"
	"github.com/hyeok-dev/dicearena/internal/services/identity"
	"github.com/hyeok-dev/dicearena/internal/services/match"
	"github.com/hyeok-dev/dicearena/internal/services/queue"
	"github.com/hyeok-dev/dicearena/internal/services/roulette"
	"github.com/hyeok-dev/dicearena/internal/services/session"
	"github.com/hyeok-dev/dicearena/internal/storage"
	"github.com/hyeok-dev/dicearena/internal/storage/memory"
	redisstorage "github.com/hyeok-dev/dicearena/internal/storage/redis"
	"github.com/hyeok-dev/dicearena/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	QueueController    *queue.Controller
	MatchRegistry      *match.Registry
	RouletteController *roulette.Controller
	IdentityService    *identity.Service
	Coordinator        *session.Coordinator

	// Websocket layer
	Gateway   *ws.Gateway
	WSHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MatchConfig holds pool seeding ratios and the reap policy (optional)
	// If zero value, defaults to match.DefaultConfig()
	MatchConfig match.Config
	// SessionConfig holds matchmaking settings (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	matchCfg := cfg.MatchConfig
	if matchCfg.CommonDicePerPlayer == 0 {
		matchCfg = match.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, matchCfg, cfg.SessionConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	matchCfg match.Config,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	queueController := queue.NewController()
	registry := match.NewRegistry(matchCfg, store, clk, rnd, logger)
	rouletteController := roulette.NewController(registry, rnd, logger)
	identityService := identity.New(store)
	gateway := ws.NewGateway(logger)
	coordinator := session.NewCoordinator(
		sessionCfg, queueController, registry, rouletteController,
		identityService, gateway, clk, logger,
	)
	wsHandler := ws.NewHandler(gateway, coordinator, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		QueueController:    queueController,
		MatchRegistry:      registry,
		RouletteController: rouletteController,
		IdentityService:    identityService,
		Coordinator:        coordinator,
		Gateway:            gateway,
		WSHandler:          wsHandler,
	}
}
