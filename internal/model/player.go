package model

import "time"

// PlayerID uniquely identifies a player across the system.
// It is the stable identity issued by the external auth collaborator.
type PlayerID string

// Player represents a game participant
type Player struct {
	ID             PlayerID   `json:"id"`
	Nickname       string     `json:"nickname"`
	JoinedAt       time.Time  `json:"joinedAt"`
	GoodDiceRecord DiceRecord `json:"goodDiceRecord"`
}
