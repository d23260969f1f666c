package match

import "time"

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 12
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Config holds pool seeding and lifecycle settings for the registry
type Config struct {
	// CommonDicePerPlayer common dice are seeded per matched player
	CommonDicePerPlayer int
	// BadDicePerPlayer bad dice are seeded per matched player
	BadDicePerPlayer int

	// IdleTimeout is how long a room may sit without activity before the
	// reaper dissolves it. Zero disables reaping.
	IdleTimeout time.Duration
	// ReapInterval is how often the reaper scans for idle rooms
	ReapInterval time.Duration
}

// DefaultConfig returns the standard seeding ratios and reap policy
func DefaultConfig() Config {
	return Config{
		CommonDicePerPlayer: 4,
		BadDicePerPlayer:    2,
		IdleTimeout:         time.Hour,
		ReapInterval:        5 * time.Minute,
	}
}
