package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is already over")
	ErrRedoDisabled = errors.New("game does not allow redo")

	// Arena errors
	ErrArenaNotFound      = errors.New("arena not found")
	ErrArenaFull          = errors.New("arena has no free slots")
	ErrArenaNotStarted    = errors.New("arena has not started yet")
	ErrArenaEnded         = errors.New("arena has ended")
	ErrAlreadyJoined      = errors.New("already joined this arena")
	ErrNotArenaMember     = errors.New("not a member of this arena")
	ErrNotArenaCreator    = errors.New("not the arena creator")
	ErrInvalidArenaConfig = errors.New("invalid arena configuration")
	ErrInvalidWordIndex   = errors.New("word index out of range")

	// Concurrency errors: the caller lost a read-modify-write race and
	// should retry against fresh state
	ErrConflict = errors.New("conflicting concurrent update")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
