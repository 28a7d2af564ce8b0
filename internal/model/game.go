package model

import "time"

// GameKey identifies which word a game is for: "daily-YYYY-MM-DD" for daily
// games, or an arena-derived key for arena games. A game record is unique per
// (UserID, Key) pair.
type GameKey string

// Word and guess limits for the standard game
const (
	WordLength = 5
	MaxGuesses = 6
)

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusWon        GameStatus = "won"
	GameStatusLost       GameStatus = "lost"
)

// LetterStatus is the per-letter outcome of an evaluated guess
type LetterStatus string

const (
	LetterCorrect       LetterStatus = "correct"
	LetterWrongPosition LetterStatus = "wrong_position"
	LetterIncorrect     LetterStatus = "incorrect"
	// LetterUnknown only appears in client-facing projections of
	// not-yet-guessed positions, never inside an evaluated guess
	LetterUnknown LetterStatus = "unknown"
)

// LetterMark is one (letter, status) pair of an evaluated guess
type LetterMark struct {
	Letter rune         `json:"letter"`
	Status LetterStatus `json:"status"`
}

// EvaluatedGuess is a guess annotated per-letter against the secret.
// Derived from the raw guess log, never mutated after creation.
type EvaluatedGuess [WordLength]LetterMark

// AllCorrect reports whether every letter is marked correct
func (e EvaluatedGuess) AllCorrect() bool {
	for _, m := range e {
		if m.Status != LetterCorrect {
			return false
		}
	}
	return true
}

// ValidationResult is the typed outcome of validating a raw guess.
// Validation failures are results, not errors: callers branch on them
// to show user-facing feedback.
type ValidationResult string

const (
	GuessValid          ValidationResult = "valid"
	GuessEmpty          ValidationResult = "invalid_empty"
	GuessWrongSize      ValidationResult = "invalid_size"
	GuessBadFormat      ValidationResult = "invalid_format"
	GuessNotAWord       ValidationResult = "invalid_word"
	GuessRepeated       ValidationResult = "invalid_already_guessed"
	GuessBreaksHardMode ValidationResult = "invalid_hard_mode"
)

// ArenaOrigin links a game to the arena word it was played for
type ArenaOrigin struct {
	ArenaID   ArenaID `json:"arena_id"`
	WordIndex int     `json:"word_index"`
}

// CustomOrigin links a game to an author-created challenge word
type CustomOrigin struct {
	AuthorID PlayerID `json:"author_id"`
	Message  string   `json:"message,omitempty"`
}

// Game represents a single word-guessing game. Guesses is the append-only
// source of truth; Evaluations, HardMode and Status are re-derived from it in
// full on every mutation.
type Game struct {
	UserID PlayerID
	Key    GameKey
	Daily  bool

	Secret string // immutable once assigned

	Guesses     []string // normalized, append-only
	Evaluations []EvaluatedGuess
	Status      GameStatus

	// HardMode reports whether every guess so far honored the hints of its
	// predecessor. It latches false the first time a pair fails.
	HardMode bool
	// HardModeRequired is externally imposed (e.g. by an arena) and makes
	// hard-mode failures a validation error rather than a flag
	HardModeRequired bool
	// AllowRedo is the author "draw" mode: repeated guesses are accepted and
	// guesses may be popped or reset
	AllowRedo bool

	Arena  *ArenaOrigin  `json:",omitempty"`
	Custom *CustomOrigin `json:",omitempty"`

	CreatedAt   time.Time
	CompletedAt *time.Time // set exactly once, on transition to won/lost

	// Version is the optimistic concurrency token checked by storage
	Version int64
}

// IsOver reports whether the game has reached a terminal status
func (g *Game) IsOver() bool {
	return g.Status != GameStatusInProgress
}

// GuessCount returns the number of guesses applied so far
func (g *Game) GuessCount() int {
	return len(g.Guesses)
}

// HasGuessed reports whether the exact word is already in the guess history
func (g *Game) HasGuessed(word string) bool {
	for _, w := range g.Guesses {
		if w == word {
			return true
		}
	}
	return false
}

// LastEvaluation returns the most recent evaluated guess, or false if none
func (g *Game) LastEvaluation() (EvaluatedGuess, bool) {
	if len(g.Evaluations) == 0 {
		return EvaluatedGuess{}, false
	}
	return g.Evaluations[len(g.Evaluations)-1], true
}
