package model

// EventType identifies a wire-level event. The string values are the
// contract with clients and must not change.
type EventType string

const (
	// Inbound events
	EventRegister    EventType = "register"
	EventJoinQueue   EventType = "matchmaking:joinQueue"
	EventLeaveQueue  EventType = "matchmaking:leaveQueue"
	EventGetDice     EventType = "roulette:getDice"
	EventSelectDice  EventType = "roulette:selectDice"

	// Outbound events
	EventWaiting        EventType = "matchmaking:waiting"
	EventMatched        EventType = "matchmaking:matched"
	EventDiceResult     EventType = "roulette:diceResult"
	EventGoodDiceUpdate EventType = "game:goodDiceUpdate"
	EventError          EventType = "error"
)

// RegisterPayload binds a connection to a player identity
type RegisterPayload struct {
	PlayerID PlayerID `json:"playerId"`
}

// JoinQueuePayload is a request to enter the matchmaking queue
type JoinQueuePayload struct {
	PlayerID       PlayerID   `json:"playerId"`
	Nickname       string     `json:"nickname"`
	GoodDiceRecord DiceRecord `json:"goodDiceRecord"`
}

// LeaveQueuePayload cancels a pending matchmaking request
type LeaveQueuePayload struct {
	PlayerID PlayerID `json:"playerId"`
}

// MatchedPayload is the match snapshot sent to every player in a new room
type MatchedPayload struct {
	RoomID         RoomID          `json:"roomId"`
	Players        []Player        `json:"players"`
	GoodDiceCounts map[DieKind]int `json:"goodDiceCounts"`
	PoolSize       int             `json:"poolSize"`
}

// GetDicePayload requests a six-die deal from the room's pool
type GetDicePayload struct {
	RoomID   RoomID   `json:"roomId"`
	PlayerID PlayerID `json:"playerId"`
}

// DiceResultPayload answers a getDice request on the same connection
type DiceResultPayload struct {
	SelectedPool []DieKind `json:"selectedPool,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// SelectDicePayload commits one die from the player's dealt dice
type SelectDicePayload struct {
	RoomID      RoomID   `json:"roomId"`
	PlayerID    PlayerID `json:"playerId"`
	SelectedDie DieKind  `json:"selectedDie"`
}

// GoodDiceUpdatePayload broadcasts remaining good dice counts to a room
type GoodDiceUpdatePayload struct {
	GoodDiceCounts map[DieKind]int `json:"goodDiceCounts"`
}

// ErrorPayload reports a request failure to the offending connection
type ErrorPayload struct {
	Message string `json:"message"`
}
