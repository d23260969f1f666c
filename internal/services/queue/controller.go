package queue

import (
	"sync"

	"github.com/hyeok-dev/dicearena/internal/model"
)

// Controller holds the global matchmaking queue. The queue is one shared
// structure across all rooms; every operation runs under a single mutex so
// Enqueue and TryForm jointly behave like "take exactly N if available".
type Controller struct {
	mu      sync.Mutex
	waiting []model.Player
}

// NewController creates an empty matchmaking queue
func NewController() *Controller {
	return &Controller{}
}

// Enqueue appends a player in arrival order. Adding a player whose ID is
// already waiting is a no-op, so transport-level retries are harmless.
func (c *Controller) Enqueue(player model.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.waiting {
		if p.ID == player.ID {
			return
		}
	}
	c.waiting = append(c.waiting, player)
}

// TryForm removes and returns the first groupSize players if at least that
// many are waiting, in FIFO order. Returns nil when the queue is too short.
func (c *Controller) TryForm(groupSize int) []model.Player {
	c.mu.Lock()
	defer c.mu.Unlock()

	if groupSize <= 0 || len(c.waiting) < groupSize {
		return nil
	}

	formed := make([]model.Player, groupSize)
	copy(formed, c.waiting[:groupSize])
	c.waiting = append(c.waiting[:0], c.waiting[groupSize:]...)
	return formed
}

// Dequeue removes a waiting player, reporting whether a removal occurred
func (c *Controller) Dequeue(id model.PlayerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.waiting {
		if p.ID == id {
			c.waiting = append(c.waiting[:i], c.waiting[i+1:]...)
			return true
		}
	}
	return false
}

// IsWaiting reports whether a player is currently queued
func (c *Controller) IsWaiting(id model.PlayerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.waiting {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of waiting players
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiting)
}
