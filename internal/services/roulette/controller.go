package roulette

import (
	"context"
	"log/slog"

	"github.com/hyeok-dev/dicearena/internal/dependencies/random"
	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/services/match"
)

// Controller arbitrates per-player draw and return against a room's shared
// dice pool. Every operation runs inside the registry's room lock, so a
// check never races its own mutation and concurrent draws in one room can
// never hand out overlapping dice.
type Controller struct {
	registry *match.Registry
	random   random.Random
	logger   *slog.Logger
}

// NewController creates a new roulette controller
func NewController(registry *match.Registry, rnd random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		registry: registry,
		random:   rnd,
		logger:   logger.With(slog.String("component", "roulette")),
	}
}

// SelectResult reports the outcome of a selection so the caller can decide
// what to broadcast
type SelectResult struct {
	// ConsumedGood is true when the chosen die was a good die and was
	// permanently removed from play
	ConsumedGood bool
	// GoodDiceCounts is the room's remaining good dice tally after the
	// selection
	GoodDiceCounts map[model.DieKind]int
}

// Draw deals six dice from the room's main pool to the given player.
// A repeated draw before the player selects replays the existing deal
// unchanged, tolerating at-least-once delivery from the transport.
func (c *Controller) Draw(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) ([]model.DieKind, error) {
	var dealt []model.DieKind

	err := c.registry.Locked(roomID, func(m *model.Match) error {
		idx := m.PlayerIndex(playerID)
		if idx < 0 {
			return model.ErrPlayerNotInMatch
		}

		if len(m.DrawPools[idx]) > 0 {
			// Duplicate request: replay the previous deal
			dealt = append([]model.DieKind(nil), m.DrawPools[idx]...)
			return nil
		}

		if len(m.MainPool) < model.DrawSize {
			return model.ErrInsufficientPool
		}

		// Shuffle a copy so a later failure cannot leave the pool half
		// permuted, then deal from the front: equivalent to drawing six
		// uniformly at random without replacement
		shuffled := append([]model.DieKind(nil), m.MainPool...)
		c.random.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		m.DrawPools[idx] = shuffled[:model.DrawSize:model.DrawSize]
		m.MainPool = shuffled[model.DrawSize:]

		dealt = append([]model.DieKind(nil), m.DrawPools[idx]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("dice dealt",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)))

	return dealt, nil
}

// Select commits one die from the player's dealt dice. The remaining five
// always return to the main pool; a good die is consumed permanently while
// a bad or common die returns as well. On any error the room state is left
// exactly as it was.
func (c *Controller) Select(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, chosen model.DieKind) (*SelectResult, error) {
	result := &SelectResult{}

	err := c.registry.Locked(roomID, func(m *model.Match) error {
		idx := m.PlayerIndex(playerID)
		if idx < 0 {
			return model.ErrPlayerNotInMatch
		}

		held := m.DrawPools[idx]
		if len(held) == 0 {
			// Double-submit without a fresh deal is a client bug, not a no-op
			return model.ErrEmptyDrawPool
		}

		chosenAt := -1
		for i, kind := range held {
			if kind == chosen {
				chosenAt = i
				break
			}
		}
		if chosenAt < 0 {
			return model.ErrDieNotHeld
		}

		isGood := model.IsGood(chosen)
		if isGood && m.GoodDiceCounts[chosen] <= 0 {
			// The tally should never reach zero while the token is still
			// live; refuse rather than go negative
			return model.ErrGoodDiceExhausted
		}

		// All validation passed; mutate
		for i, kind := range held {
			if i != chosenAt {
				m.MainPool = append(m.MainPool, kind)
			}
		}
		if isGood {
			m.GoodDiceCounts[chosen]--
		} else {
			m.MainPool = append(m.MainPool, chosen)
		}
		m.DrawPools[idx] = nil

		result.ConsumedGood = isGood
		result.GoodDiceCounts = make(map[model.DieKind]int, len(m.GoodDiceCounts))
		for k, v := range m.GoodDiceCounts {
			result.GoodDiceCounts[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("die selected",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)),
		slog.String("die", string(chosen)),
		slog.Bool("consumed_good", result.ConsumedGood))

	return result, nil
}
