package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wordarena/wordarena-go/internal/dependencies/clock"
	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/services/dictionary"
	"github.com/wordarena/wordarena-go/internal/services/evaluation"
	"github.com/wordarena/wordarena-go/internal/services/words"
	"github.com/wordarena/wordarena-go/internal/storage"
)

// Controller owns the lifecycle of individual games: creation, guess
// validation and application, and the draw-mode redo operations
type Controller struct {
	storage    storage.Storage
	dictionary *dictionary.Service
	assigner   *words.Assigner
	clock      clock.Clock
	logger     *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	dictionary *dictionary.Service,
	assigner *words.Assigner,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		dictionary: dictionary,
		assigner:   assigner,
		clock:      clock,
		logger:     logger,
	}
}

// GetGame retrieves a game by its (user, key) identity
func (c *Controller) GetGame(ctx context.Context, userID model.PlayerID, key model.GameKey) (*model.Game, error) {
	return c.storage.GetGame(ctx, userID, key)
}

// StartDailyGame returns the user's game for today's calendar day, creating
// it on first play. The secret is a pure function of (identity, day, seed).
func (c *Controller) StartDailyGame(ctx context.Context, user model.Identity) (*model.Game, error) {
	key := words.DailyKey(c.clock.Now())

	game, err := c.storage.GetGame(ctx, user.UserID, key)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	secret := c.assigner.WordForUser(user, key)
	return c.createGame(ctx, &model.Game{
		UserID: user.UserID,
		Key:    key,
		Daily:  true,
		Secret: secret,
	})
}

// StartArenaGame returns the user's game for one of an arena's words,
// creating it lazily as the member advances. Membership and availability
// gating is the arena controller's concern.
func (c *Controller) StartArenaGame(ctx context.Context, arena *model.Arena, user model.Identity, wordIndex int) (*model.Game, error) {
	if wordIndex < 0 || wordIndex >= arena.Config.WordCount {
		return nil, model.ErrInvalidWordIndex
	}

	key := arena.WordKey(wordIndex)
	game, err := c.storage.GetGame(ctx, user.UserID, key)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	secret := c.assigner.WordForArena(arena.ID, wordIndex)
	return c.createGame(ctx, &model.Game{
		UserID:           user.UserID,
		Key:              key,
		Secret:           secret,
		HardModeRequired: arena.Config.HardModeRequired,
		Arena: &model.ArenaOrigin{
			ArenaID:   arena.ID,
			WordIndex: wordIndex,
		},
	})
}

// StartCustomGame creates a game around an author-chosen secret. AllowRedo
// enables the author draw mode: repeated guesses, pop and reset.
func (c *Controller) StartCustomGame(ctx context.Context, user model.Identity, key model.GameKey, secret string, origin model.CustomOrigin, allowRedo bool) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, user.UserID, key)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	return c.createGame(ctx, &model.Game{
		UserID:    user.UserID,
		Key:       key,
		Secret:    strings.ToLower(secret),
		AllowRedo: allowRedo,
		Custom:    &origin,
	})
}

func (c *Controller) createGame(ctx context.Context, game *model.Game) (*model.Game, error) {
	game.Status = model.GameStatusInProgress
	game.HardMode = true
	game.CreatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		// A concurrent first play already created the record; use theirs
		if errors.Is(err, model.ErrConflict) {
			return c.storage.GetGame(ctx, game.UserID, game.Key)
		}
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("user_id", string(game.UserID)),
		slog.String("game_key", string(game.Key)),
		slog.Bool("daily", game.Daily),
	)

	return game, nil
}

// ValidateGuess checks a raw guess against the game's current state. Pure:
// no side effects, result reported as a typed enum for user-facing feedback.
func (c *Controller) ValidateGuess(game *model.Game, raw string) model.ValidationResult {
	guess := Normalize(raw)

	if guess == "" {
		return model.GuessEmpty
	}
	if len(guess) != model.WordLength {
		return model.GuessWrongSize
	}
	if !isAlpha(guess) {
		return model.GuessBadFormat
	}
	// Exact repeats are pointless outside draw mode
	if !game.AllowRedo && game.HasGuessed(guess) {
		return model.GuessRepeated
	}
	// The secret is always guessable even if the dictionary misses it
	if guess != game.Secret && !c.dictionary.IsAcceptedWord(guess) {
		return model.GuessNotAWord
	}

	if game.HardModeRequired {
		if prev, ok := game.LastEvaluation(); ok {
			eval, err := evaluation.Evaluate(game.Secret, guess)
			if err != nil {
				return model.GuessBadFormat
			}
			if !evaluation.IsHardModeConsistent(prev, eval) {
				return model.GuessBreaksHardMode
			}
		}
	}

	return model.GuessValid
}

// ApplyGuess appends a validated guess and re-derives the full game state
// from the guess log. Calling it on a terminal game or with an unvalidated
// guess is a caller bug and panics.
func (c *Controller) ApplyGuess(ctx context.Context, game *model.Game, raw string) (*model.Game, error) {
	if game.IsOver() {
		panic(fmt.Sprintf("ApplyGuess on terminal game %s/%s", game.UserID, game.Key))
	}
	if result := c.ValidateGuess(game, raw); result != model.GuessValid {
		panic(fmt.Sprintf("ApplyGuess with unvalidated guess %q: %s", raw, result))
	}

	game.Guesses = append(game.Guesses, Normalize(raw))
	c.rederive(game)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsOver() {
		c.logger.Info("game completed",
			slog.String("user_id", string(game.UserID)),
			slog.String("game_key", string(game.Key)),
			slog.String("status", string(game.Status)),
			slog.Int("guesses", game.GuessCount()),
			slog.Bool("hard_mode", game.HardMode),
		)
	}

	return game, nil
}

// PopGuess removes the most recent guess. Only draw-mode games allow this.
func (c *Controller) PopGuess(ctx context.Context, game *model.Game) (*model.Game, error) {
	if !game.AllowRedo {
		return nil, model.ErrRedoDisabled
	}
	if len(game.Guesses) == 0 {
		return game, nil
	}

	game.Guesses = game.Guesses[:len(game.Guesses)-1]
	c.rederive(game)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// ResetGuesses clears the guess history. Only draw-mode games allow this.
func (c *Controller) ResetGuesses(ctx context.Context, game *model.Game) (*model.Game, error) {
	if !game.AllowRedo {
		return nil, model.ErrRedoDisabled
	}

	game.Guesses = nil
	c.rederive(game)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// rederive recomputes evaluations, the hard-mode flag, status and the
// completion timestamp from the raw guess log. Deliberately from scratch on
// every mutation: the log is the source of truth and guess counts are tiny,
// so re-derivation beats patching cached state.
func (c *Controller) rederive(game *model.Game) {
	evals := make([]model.EvaluatedGuess, len(game.Guesses))
	for i, guess := range game.Guesses {
		eval, err := evaluation.Evaluate(game.Secret, guess)
		if err != nil {
			panic(fmt.Sprintf("invalid guess %q in log of game %s/%s", guess, game.UserID, game.Key))
		}
		evals[i] = eval
	}

	game.Evaluations = evals
	game.HardMode = evaluation.IsHardModeHistory(evals)

	wasOver := game.CompletedAt != nil
	switch {
	case len(evals) > 0 && evals[len(evals)-1].AllCorrect():
		game.Status = model.GameStatusWon
	case len(evals) >= model.MaxGuesses:
		game.Status = model.GameStatusLost
	default:
		game.Status = model.GameStatusInProgress
	}

	// Completion timestamp is stamped exactly once, on the transition into a
	// terminal status; popping back out of it clears the stamp
	if game.IsOver() && !wasOver {
		now := c.clock.Now()
		game.CompletedAt = &now
	} else if !game.IsOver() {
		game.CompletedAt = nil
	}
}

// Normalize lowercases and trims a raw guess
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Interface for dependency injection
type ControllerInterface interface {
	GetGame(ctx context.Context, userID model.PlayerID, key model.GameKey) (*model.Game, error)
	StartDailyGame(ctx context.Context, user model.Identity) (*model.Game, error)
	StartArenaGame(ctx context.Context, arena *model.Arena, user model.Identity, wordIndex int) (*model.Game, error)
	StartCustomGame(ctx context.Context, user model.Identity, key model.GameKey, secret string, origin model.CustomOrigin, allowRedo bool) (*model.Game, error)
	ValidateGuess(game *model.Game, raw string) model.ValidationResult
	ApplyGuess(ctx context.Context, game *model.Game, raw string) (*model.Game, error)
	PopGuess(ctx context.Context, game *model.Game) (*model.Game, error)
	ResetGuesses(ctx context.Context, game *model.Game) (*model.Game, error)
}

var _ ControllerInterface = (*Controller)(nil)
