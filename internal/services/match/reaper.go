package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/hyeok-dev/dicearena/internal/model"
)

// StartReaper runs a janitor loop that dissolves rooms idle longer than the
// configured timeout, bounding memory growth when clients vanish without
// finishing. It returns immediately; the loop stops when ctx is cancelled
// or reaping is disabled by config.
func (r *Registry) StartReaper(ctx context.Context) {
	if r.cfg.IdleTimeout <= 0 || r.cfg.ReapInterval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(r.cfg.ReapInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.reapIdle(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// reapIdle dissolves every room whose last activity is older than the idle
// timeout. The room list is collected under the read lock first so Dissolve
// can take the write lock per room.
func (r *Registry) reapIdle(ctx context.Context) {
	cutoff := r.clock.Now().Add(-r.cfg.IdleTimeout)

	r.mu.RLock()
	var idle []model.RoomID
	for roomID, rm := range r.rooms {
		rm.mu.Lock()
		if rm.match.LastActivity.Before(cutoff) {
			idle = append(idle, roomID)
		}
		rm.mu.Unlock()
	}
	r.mu.RUnlock()

	for _, roomID := range idle {
		r.logger.Info("reaping idle match", slog.String("room_id", string(roomID)))
		_ = r.Dissolve(ctx, roomID)
	}
}
