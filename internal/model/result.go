package model

import "time"

// MatchResult is the write-once record handed to the result sink when a
// match finishes. The core never reads it back on any hot path.
type MatchResult struct {
	ID         string    `json:"id"`
	RoomID     RoomID    `json:"roomId"`
	Players    []Player  `json:"players"`
	CreatedAt  time.Time `json:"createdAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
