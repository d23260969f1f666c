package match

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hyeok-dev/dicearena/internal/dependencies/clock"
	"github.com/hyeok-dev/dicearena/internal/dependencies/random"
	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/storage"
)

// Registry owns the lifecycle of active rooms. Each room carries its own
// mutex; all reads and mutations of one room's match state go through
// Locked, so rooms serialize independently and in parallel with each other.
type Registry struct {
	cfg     Config
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	rooms    map[model.RoomID]*room
	byPlayer map[model.PlayerID]model.RoomID
}

type room struct {
	mu    sync.Mutex
	match *model.Match
}

// NewRegistry creates an empty match registry
func NewRegistry(
	cfg Config,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		cfg:      cfg,
		storage:  store,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "match-registry")),
		rooms:    make(map[model.RoomID]*room),
		byPlayer: make(map[model.PlayerID]model.RoomID),
	}
}

// CreateMatch builds a fresh room for the given players, seeds its dice
// pool, and registers the player-to-room reverse index. The returned match
// is a snapshot; later state must be read through GetByRoom or Locked.
func (r *Registry) CreateMatch(ctx context.Context, players []model.Player) (*model.Match, error) {
	if len(players) == 0 {
		return nil, errors.New("cannot create a match with no players")
	}

	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var roomID model.RoomID
	for {
		roomID = model.RoomID("room_" + r.random.String(RoomCodeLength, RoomCodeAlphabet))
		if _, exists := r.rooms[roomID]; !exists {
			break
		}
	}

	pool, counts := r.seedPool(players)

	m := &model.Match{
		RoomID:         roomID,
		Players:        players,
		MainPool:       pool,
		DrawPools:      make([][]model.DieKind, len(players)),
		GoodDiceCounts: counts,
		Status:         model.MatchStatusActive,
		CreatedAt:      now,
		LastActivity:   now,
	}

	r.rooms[roomID] = &room{match: m}
	for _, p := range players {
		r.byPlayer[p.ID] = roomID
	}

	r.logger.Info("match created",
		slog.String("room_id", string(roomID)),
		slog.Int("players", len(players)),
		slog.Int("pool_size", len(pool)))

	return snapshot(m), nil
}

// GetByRoom returns a snapshot of an active match, or ErrMatchNotFound.
// Absence is an expected outcome; callers must not treat it as fatal.
func (r *Registry) GetByRoom(roomID model.RoomID) (*model.Match, error) {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return nil, model.ErrMatchNotFound
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	return snapshot(rm.match), nil
}

// GetByPlayer returns a snapshot of the match a player belongs to,
// or ErrMatchNotFound
func (r *Registry) GetByPlayer(playerID model.PlayerID) (*model.Match, error) {
	r.mu.RLock()
	roomID, ok := r.byPlayer[playerID]
	r.mu.RUnlock()
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return r.GetByRoom(roomID)
}

// Locked runs fn with exclusive access to one room's live match state and
// stamps LastActivity when fn succeeds. An error from fn must leave the
// match untouched; fn implementations validate before mutating.
func (r *Registry) Locked(roomID model.RoomID, fn func(m *model.Match) error) error {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return model.ErrMatchNotFound
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if err := fn(rm.match); err != nil {
		return err
	}
	rm.match.LastActivity = r.clock.Now()
	return nil
}

// Dissolve removes a room and its player indices and hands the finished
// match to the result sink. The sink write happens after all locks are
// released; a failed write is logged and dropped, never retried under lock.
func (r *Registry) Dissolve(ctx context.Context, roomID model.RoomID) error {
	r.mu.Lock()
	rm, ok := r.rooms[roomID]
	if !ok {
		r.mu.Unlock()
		return model.ErrMatchNotFound
	}
	delete(r.rooms, roomID)
	for _, p := range rm.match.Players {
		if r.byPlayer[p.ID] == roomID {
			delete(r.byPlayer, p.ID)
		}
	}
	r.mu.Unlock()

	rm.mu.Lock()
	rm.match.Status = model.MatchStatusFinished
	result := &model.MatchResult{
		ID:         uuid.New().String(),
		RoomID:     roomID,
		Players:    rm.match.Players,
		CreatedAt:  rm.match.CreatedAt,
		FinishedAt: r.clock.Now(),
	}
	rm.mu.Unlock()

	if err := r.storage.SaveMatchResult(ctx, result); err != nil {
		r.logger.Error("failed to archive match result",
			slog.String("room_id", string(roomID)),
			slog.Any("error", err))
	}

	r.logger.Info("match dissolved", slog.String("room_id", string(roomID)))
	return nil
}

// ActiveCount returns the number of live rooms
func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// seedPool expands every player's good dice contribution, adds randomized
// common and bad dice, shuffles the whole sequence, and tallies the good
// dice counts present at seed time. Caller holds the registry lock.
func (r *Registry) seedPool(players []model.Player) ([]model.DieKind, map[model.DieKind]int) {
	var pool []model.DieKind

	counts := make(map[model.DieKind]int)
	for _, p := range players {
		// Iterate the catalog, not the map, to keep seeding order stable
		for _, kind := range model.GoodDice {
			n := p.GoodDiceRecord[kind]
			for i := 0; i < n; i++ {
				pool = append(pool, kind)
			}
			counts[kind] += n
		}
	}
	for kind, n := range counts {
		if n == 0 {
			delete(counts, kind)
		}
	}

	for i := 0; i < len(players)*r.cfg.CommonDicePerPlayer; i++ {
		pool = append(pool, model.CommonDice[r.random.Intn(len(model.CommonDice))])
	}
	for i := 0; i < len(players)*r.cfg.BadDicePerPlayer; i++ {
		pool = append(pool, model.BadDice[r.random.Intn(len(model.BadDice))])
	}

	r.random.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	return pool, counts
}

// snapshot deep-copies a match so callers cannot mutate live room state
// outside the room lock
func snapshot(m *model.Match) *model.Match {
	cp := *m
	cp.Players = append([]model.Player(nil), m.Players...)
	cp.MainPool = append([]model.DieKind(nil), m.MainPool...)
	cp.DrawPools = make([][]model.DieKind, len(m.DrawPools))
	for i, dp := range m.DrawPools {
		cp.DrawPools[i] = append([]model.DieKind(nil), dp...)
	}
	cp.GoodDiceCounts = make(map[model.DieKind]int, len(m.GoodDiceCounts))
	for k, v := range m.GoodDiceCounts {
		cp.GoodDiceCounts[k] = v
	}
	return &cp
}
