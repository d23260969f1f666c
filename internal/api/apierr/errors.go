package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hyeok-dev/dicearena/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidDiceRecord = "INVALID_DICE_RECORD"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeMatchNotFound     = "MATCH_NOT_FOUND"
	CodeNotInMatch        = "NOT_IN_MATCH"
	CodeMatchFinished     = "MATCH_FINISHED"
	CodeInsufficientPool  = "INSUFFICIENT_POOL"
	CodeEmptyDrawPool     = "EMPTY_DRAW_POOL"
	CodeDieNotHeld        = "DIE_NOT_HELD"
	CodeGoodDiceExhausted = "GOOD_DICE_EXHAUSTED"
	CodeResultNotFound    = "RESULT_NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrResultNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeResultNotFound, "Match result not found"}}
	case errors.Is(err, model.ErrInvalidDiceRecord):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDiceRecord, "Dice contribution is invalid"}}
	case errors.Is(err, model.ErrPlayerNotInMatch):
		return &httpError{http.StatusForbidden, APIError{CodeNotInMatch, "Player is not in this match"}}
	case errors.Is(err, model.ErrMatchFinished):
		return &httpError{http.StatusConflict, APIError{CodeMatchFinished, "Match has already finished"}}
	case errors.Is(err, model.ErrInsufficientPool):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPool, "Not enough dice left in the pool"}}
	case errors.Is(err, model.ErrEmptyDrawPool):
		return &httpError{http.StatusConflict, APIError{CodeEmptyDrawPool, "No dice have been dealt to this player"}}
	case errors.Is(err, model.ErrDieNotHeld):
		return &httpError{http.StatusConflict, APIError{CodeDieNotHeld, "Selected die is not in the dealt hand"}}
	case errors.Is(err, model.ErrGoodDiceExhausted):
		return &httpError{http.StatusConflict, APIError{CodeGoodDiceExhausted, "No copies of that good die remain"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
