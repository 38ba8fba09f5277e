package errors

import "net/http"

// Error codes for standardized error responses
const (
	// Token errors
	ErrCodeInvalidToken = "invalid_token"
	ErrCodeTokenExpired = "token_expired"

	// Validation errors
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeValidationFailed  = "validation_failed"
	ErrCodeMissingField      = "missing_field"
	ErrCodeInvalidPlayer     = "invalid_player_id"
	ErrCodeInvalidPuzzleID   = "invalid_puzzle_id"
	ErrCodeUnknownDifficulty = "unknown_difficulty"
	ErrCodeUnknownOrder      = "unknown_order"

	// Puzzle errors
	ErrCodePuzzleNotFound   = "puzzle_not_found"
	ErrCodeUnplayablePuzzle = "unplayable_puzzle"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)

var statusByCode = map[string]int{
	ErrCodeInvalidToken:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeInvalidRequest:     http.StatusBadRequest,
	ErrCodeValidationFailed:   http.StatusBadRequest,
	ErrCodeMissingField:       http.StatusBadRequest,
	ErrCodeInvalidPlayer:      http.StatusBadRequest,
	ErrCodeInvalidPuzzleID:    http.StatusBadRequest,
	ErrCodeUnknownDifficulty:  http.StatusBadRequest,
	ErrCodeUnknownOrder:       http.StatusBadRequest,
	ErrCodePuzzleNotFound:     http.StatusNotFound,
	ErrCodeUnplayablePuzzle:   http.StatusUnprocessableEntity,
	ErrCodeInternalError:      http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// StatusFor returns the HTTP status a code is served with; unknown codes are 500.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
