package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hyeok-dev/dicearena/internal/dependencies/clock"
	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/services/identity"
	"github.com/hyeok-dev/dicearena/internal/services/match"
	"github.com/hyeok-dev/dicearena/internal/services/queue"
	"github.com/hyeok-dev/dicearena/internal/services/roulette"
)

// Broadcaster is the presence surface the coordinator drives. The websocket
// gateway implements it; tests substitute a fake.
type Broadcaster interface {
	// JoinRoom subscribes a player's live connection to a room.
	// Best-effort: a player with no live connection is skipped.
	JoinRoom(playerID model.PlayerID, roomID model.RoomID)

	// Broadcast fans an event out to every connection joined to the room,
	// at most once per currently live connection
	Broadcast(roomID model.RoomID, event model.EventType, payload any)

	// SendToPlayer delivers an event to one player's connection, reporting
	// whether a live connection existed
	SendToPlayer(playerID model.PlayerID, event model.EventType, payload any) bool

	// LiveInRoom returns how many connections are currently joined to the room
	LiveInRoom(roomID model.RoomID) int
}

// Config holds matchmaking policy for the coordinator
type Config struct {
	// GroupSize is the number of players per match
	GroupSize int
}

// DefaultConfig returns the standard four-player mode
func DefaultConfig() Config {
	return Config{GroupSize: 4}
}

// Coordinator orchestrates the full session flow: queue intake, eager match
// formation, roulette arbitration, and room-scoped broadcasts. It owns no
// state of its own; every mutation happens in the services it drives.
type Coordinator struct {
	cfg         Config
	queue       *queue.Controller
	registry    *match.Registry
	roulette    *roulette.Controller
	identity    *identity.Service
	broadcaster Broadcaster
	clock       clock.Clock
	logger      *slog.Logger
}

// NewCoordinator creates a new session coordinator
func NewCoordinator(
	cfg Config,
	q *queue.Controller,
	registry *match.Registry,
	r *roulette.Controller,
	id *identity.Service,
	b Broadcaster,
	clk clock.Clock,
	logger *slog.Logger,
) *Coordinator {
	if cfg.GroupSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Coordinator{
		cfg:         cfg,
		queue:       q,
		registry:    registry,
		roulette:    r,
		identity:    id,
		broadcaster: b,
		clock:       clk,
		logger:      logger.With(slog.String("component", "session")),
	}
}

// JoinQueue validates a matchmaking request, enqueues the player, and
// eagerly attempts match formation. Invalid requests are rejected before
// any state changes. When a match forms, every matched player's connection
// joins the room and receives the matched snapshot; otherwise the joining
// player is told to keep waiting.
func (c *Coordinator) JoinQueue(ctx context.Context, req model.JoinQueuePayload) error {
	if req.PlayerID == "" || req.Nickname == "" {
		return model.ErrInvalidDiceRecord
	}
	if err := req.GoodDiceRecord.Validate(); err != nil {
		return err
	}

	player := model.Player{
		ID:             req.PlayerID,
		Nickname:       req.Nickname,
		JoinedAt:       c.clock.Now(),
		GoodDiceRecord: req.GoodDiceRecord,
	}

	if err := c.identity.Upsert(ctx, &player); err != nil {
		// Identity is collaborator glue; matchmaking proceeds without it
		c.logger.Warn("identity upsert failed",
			slog.String("player_id", string(player.ID)),
			slog.Any("error", err))
	}

	c.queue.Enqueue(player)
	c.logger.Info("player queued",
		slog.String("player_id", string(player.ID)),
		slog.Int("queue_len", c.queue.Len()))

	formed := c.queue.TryForm(c.cfg.GroupSize)
	if formed == nil {
		c.broadcaster.SendToPlayer(player.ID, model.EventWaiting, nil)
		return nil
	}

	m, err := c.registry.CreateMatch(ctx, formed)
	if err != nil {
		return err
	}

	for _, p := range m.Players {
		c.broadcaster.JoinRoom(p.ID, m.RoomID)
	}
	c.broadcaster.Broadcast(m.RoomID, model.EventMatched, model.MatchedPayload{
		RoomID:         m.RoomID,
		Players:        m.Players,
		GoodDiceCounts: m.GoodDiceCounts,
		PoolSize:       len(m.MainPool),
	})

	return nil
}

// LeaveQueue cancels a pending matchmaking request, reporting whether the
// player was still waiting
func (c *Coordinator) LeaveQueue(ctx context.Context, playerID model.PlayerID) bool {
	removed := c.queue.Dequeue(playerID)
	if removed {
		c.logger.Info("player left queue", slog.String("player_id", string(playerID)))
	}
	return removed
}

// GetDice deals six dice to the player (or replays an undecided deal) and
// shapes the outcome into the reply payload for the requesting connection
func (c *Coordinator) GetDice(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) model.DiceResultPayload {
	dealt, err := c.roulette.Draw(ctx, roomID, playerID)
	if err != nil {
		return model.DiceResultPayload{Error: err.Error()}
	}
	return model.DiceResultPayload{SelectedPool: dealt}
}

// SelectDice commits the player's chosen die. Consuming a good die
// broadcasts the room's updated good dice counts.
func (c *Coordinator) SelectDice(ctx context.Context, req model.SelectDicePayload) error {
	result, err := c.roulette.Select(ctx, req.RoomID, req.PlayerID, req.SelectedDie)
	if err != nil {
		return err
	}

	if result.ConsumedGood {
		c.broadcaster.Broadcast(req.RoomID, model.EventGoodDiceUpdate, model.GoodDiceUpdatePayload{
			GoodDiceCounts: result.GoodDiceCounts,
		})
	}
	return nil
}

// PlayerDisconnected handles the presence gateway dropping a player's
// connection. A disconnected player's match survives for reconnection; only
// when the last live connection of a room is gone is the match dissolved
// and archived.
func (c *Coordinator) PlayerDisconnected(ctx context.Context, playerID model.PlayerID) {
	m, err := c.registry.GetByPlayer(playerID)
	if err != nil {
		if !errors.Is(err, model.ErrMatchNotFound) {
			c.logger.Error("lookup on disconnect failed",
				slog.String("player_id", string(playerID)),
				slog.Any("error", err))
		}
		return
	}

	if c.broadcaster.LiveInRoom(m.RoomID) > 0 {
		return
	}

	c.logger.Info("last player disconnected, dissolving match",
		slog.String("room_id", string(m.RoomID)))
	if err := c.registry.Dissolve(ctx, m.RoomID); err != nil {
		c.logger.Error("dissolve on disconnect failed",
			slog.String("room_id", string(m.RoomID)),
			slog.Any("error", err))
	}
}

// QueueStatus describes where a player currently stands in matchmaking
type QueueStatus struct {
	Status string       `json:"status"` // waiting, matched, idle
	RoomID model.RoomID `json:"roomId,omitempty"`
}

// Status reports whether a player is waiting, matched, or neither. Both
// outcomes of the connect/matchmake race are normal here.
func (c *Coordinator) Status(ctx context.Context, playerID model.PlayerID) QueueStatus {
	if c.queue.IsWaiting(playerID) {
		return QueueStatus{Status: "waiting"}
	}
	if m, err := c.registry.GetByPlayer(playerID); err == nil {
		return QueueStatus{Status: "matched", RoomID: m.RoomID}
	}
	return QueueStatus{Status: "idle"}
}
