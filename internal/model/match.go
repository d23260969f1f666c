package model

import "time"

// RoomID uniquely identifies an active match room
type RoomID string

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusActive   MatchStatus = "active"
	MatchStatusFinished MatchStatus = "finished"
)

// DrawSize is the number of dice dealt to a player per roulette turn
const DrawSize = 6

// Match is the shared state of one room. All reads and mutations of a Match
// must happen under its room's lock; the registry enforces this.
type Match struct {
	RoomID         RoomID           `json:"roomId"`
	Players        []Player         `json:"players"`
	MainPool       []DieKind        `json:"mainPool"`
	DrawPools      [][]DieKind      `json:"drawPools"` // indexed by player position
	GoodDiceCounts map[DieKind]int  `json:"goodDiceCounts"`
	Status         MatchStatus      `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastActivity   time.Time        `json:"lastActivity"`
}

// PlayerIndex returns the position of a player in the match, or -1
func (m *Match) PlayerIndex(id PlayerID) int {
	for i, p := range m.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// PoolSize returns the total number of undrawn and drawn tokens still live
// in the match. Consumed good dice are not counted.
func (m *Match) PoolSize() int {
	n := len(m.MainPool)
	for _, dp := range m.DrawPools {
		n += len(dp)
	}
	return n
}
