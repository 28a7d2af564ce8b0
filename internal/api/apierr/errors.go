package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/services/auth"
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
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeGameOver            = "GAME_OVER"
	CodeRedoDisabled        = "REDO_DISABLED"
	CodeArenaNotFound       = "ARENA_NOT_FOUND"
	CodeArenaFull           = "ARENA_FULL"
	CodeArenaNotStarted     = "ARENA_NOT_STARTED"
	CodeArenaEnded          = "ARENA_ENDED"
	CodeAlreadyJoined       = "ALREADY_JOINED"
	CodeNotArenaMember      = "NOT_ARENA_MEMBER"
	CodeNotArenaCreator     = "NOT_ARENA_CREATOR"
	CodeInvalidArenaConfig  = "INVALID_ARENA_CONFIG"
	CodeInvalidWordIndex    = "INVALID_WORD_INDEX"
	CodeConflict            = "CONFLICT"
	CodeDictionaryNotLoaded = "DICTIONARY_NOT_LOADED"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
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
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already over"}}
	case errors.Is(err, model.ErrRedoDisabled):
		return &httpError{http.StatusForbidden, APIError{CodeRedoDisabled, "This game does not allow redo"}}
	case errors.Is(err, model.ErrArenaNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeArenaNotFound, "Arena not found"}}
	case errors.Is(err, model.ErrArenaFull):
		return &httpError{http.StatusConflict, APIError{CodeArenaFull, "Arena has no free slots"}}
	case errors.Is(err, model.ErrArenaNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeArenaNotStarted, "Arena has not started yet"}}
	case errors.Is(err, model.ErrArenaEnded):
		return &httpError{http.StatusConflict, APIError{CodeArenaEnded, "Arena has ended"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined this arena"}}
	case errors.Is(err, model.ErrNotArenaMember):
		return &httpError{http.StatusForbidden, APIError{CodeNotArenaMember, "Not a member of this arena"}}
	case errors.Is(err, model.ErrNotArenaCreator):
		return &httpError{http.StatusForbidden, APIError{CodeNotArenaCreator, "Only the arena creator can perform this action"}}
	case errors.Is(err, model.ErrInvalidArenaConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidArenaConfig, err.Error()}}
	case errors.Is(err, model.ErrInvalidWordIndex):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWordIndex, "Word index out of range"}}
	case errors.Is(err, model.ErrConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Conflicting concurrent update, retry"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryNotLoaded, "Dictionary not loaded"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
