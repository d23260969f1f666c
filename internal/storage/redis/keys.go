package redis

import (
	"fmt"

	"github.com/hyeok-dev/dicearena/internal/model"
)

// Key prefix for all arena-related data
const keyPrefix = "dicearena"

// playerKey returns the Redis key for a Player identity record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// resultKey returns the Redis key for a MatchResult
func resultKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:result:%s", keyPrefix, roomID)
}
