package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Queue errors
	ErrInvalidDiceRecord = errors.New("invalid good dice record")

	// Match errors
	ErrMatchNotFound    = errors.New("match not found")
	ErrPlayerNotInMatch = errors.New("player is not in this match")
	ErrMatchFinished    = errors.New("match is finished")

	// Roulette errors
	ErrInsufficientPool = errors.New("not enough dice in the pool")
	ErrDieNotHeld        = errors.New("die is not held by player")
	ErrEmptyDrawPool     = errors.New("player has no dealt dice to select from")
	ErrGoodDiceExhausted = errors.New("good dice count already at zero")

	// Result errors
	ErrResultNotFound = errors.New("match result not found")
)
