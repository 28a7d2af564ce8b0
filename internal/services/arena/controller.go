package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordarena/wordarena-go/internal/dependencies/clock"
	"github.com/wordarena/wordarena-go/internal/dependencies/random"
	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/services/game"
	"github.com/wordarena/wordarena-go/internal/storage"
)

const (
	arenaIDLength = 6
	// Alphabet avoids ambiguous characters (I/1, O/0)
	arenaIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// Bound on version-conflict retries for member mutations
	saveRetries = 5
)

// Controller owns arena lifecycle: creation, membership, availability gating
// and standings. Guess mechanics stay in the game controller; this layer only
// decides who may play which word, and when.
type Controller struct {
	storage storage.Storage
	games   game.ControllerInterface
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	scoring ScoringConfig
	policy  SuddenDeathPolicy
}

// NewController creates a new ArenaController
func NewController(
	storage storage.Storage,
	games game.ControllerInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	scoring ScoringConfig,
	policy SuddenDeathPolicy,
) *Controller {
	return &Controller{
		storage: storage,
		games:   games,
		clock:   clock,
		random:  random,
		logger:  logger,
		scoring: scoring,
		policy:  policy,
	}
}

// CreateArena validates the configuration, assigns a fresh joinable ID and
// persists the arena. The creator is recorded but does not become a member
// until they join.
func (c *Controller) CreateArena(ctx context.Context, creator model.Identity, cfg model.ArenaConfig) (*model.Arena, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	id, err := c.generateArenaID(ctx)
	if err != nil {
		return nil, err
	}

	arena := &model.Arena{
		ID:        id,
		Creator:   creator,
		Config:    cfg,
		CreatedAt: c.clock.Now(),
	}

	if err := c.storage.SaveArena(ctx, arena); err != nil {
		return nil, err
	}

	c.logger.Info("arena created",
		slog.String("arena_id", string(arena.ID)),
		slog.String("creator", creator.Key()),
		slog.Int("word_count", cfg.WordCount),
		slog.Int("audience_size", cfg.AudienceSize),
	)

	return arena, nil
}

// GetArena retrieves an arena by ID
func (c *Controller) GetArena(ctx context.Context, id model.ArenaID) (*model.Arena, error) {
	return c.storage.GetArena(ctx, id)
}

// Availability resolves the arena's current time-window status
func (c *Controller) Availability(arena *model.Arena) model.Availability {
	return ResolveAvailability(arena, c.clock.Now())
}

// Join adds the user as a member. Pre-registered identities always have a
// place; anyone else takes a free slot while capacity remains. Joining an
// immediate arena for the first time triggers its start.
func (c *Controller) Join(ctx context.Context, arenaID model.ArenaID, user model.Identity) (*model.Arena, error) {
	for attempt := 0; ; attempt++ {
		arena, err := c.storage.GetArena(ctx, arenaID)
		if err != nil {
			return nil, err
		}

		if c.Availability(arena).Status == model.AvailabilityEnded {
			return nil, model.ErrArenaEnded
		}

		membership := ClassifyMembership(arena, user)
		switch membership {
		case model.MembershipMember, model.MembershipMemberFreeSlot:
			return nil, model.ErrAlreadyJoined
		case model.MembershipNone:
			return nil, model.ErrArenaFull
		}

		arena.Members = append(arena.Members, model.ArenaMember{
			Identity: user,
			JoinedAt: c.clock.Now(),
		})

		// An immediate arena starts when its first member arrives
		if arena.Config.ScheduledStart == nil && arena.StartedAt == nil {
			now := c.clock.Now()
			arena.StartedAt = &now
		}

		err = c.storage.SaveArena(ctx, arena)
		if err == nil {
			c.logger.Info("arena joined",
				slog.String("arena_id", string(arena.ID)),
				slog.String("user", user.Key()),
				slog.String("membership", string(membership)),
			)
			return arena, nil
		}
		// Lost the race for the last slot (or a concurrent join); re-read
		// and re-check capacity
		if !errors.Is(err, model.ErrConflict) || attempt >= saveRetries {
			return nil, err
		}
	}
}

// Kick soft-removes a member, excluding them from ranking and capacity
// without erasing their join history. Creator only.
func (c *Controller) Kick(ctx context.Context, arenaID model.ArenaID, requester model.Identity, target model.Identity) (*model.Arena, error) {
	for attempt := 0; ; attempt++ {
		arena, err := c.storage.GetArena(ctx, arenaID)
		if err != nil {
			return nil, err
		}

		if arena.Creator.Provider != requester.Provider || arena.Creator.UserID != requester.UserID {
			return nil, model.ErrNotArenaCreator
		}

		member := arena.FindMember(target)
		if member == nil {
			return nil, model.ErrNotArenaMember
		}
		member.Kicked = true

		err = c.storage.SaveArena(ctx, arena)
		if err == nil {
			c.logger.Info("arena member kicked",
				slog.String("arena_id", string(arena.ID)),
				slog.String("target", target.Key()),
			)
			return arena, nil
		}
		if !errors.Is(err, model.ErrConflict) || attempt >= saveRetries {
			return nil, err
		}
	}
}

// Standings computes the ranked standings from the arena's current games
func (c *Controller) Standings(ctx context.Context, arenaID model.ArenaID) (*model.Arena, []model.Standing, error) {
	arena, err := c.storage.GetArena(ctx, arenaID)
	if err != nil {
		return nil, nil, err
	}

	games, err := c.storage.GetGamesForArena(ctx, arenaID)
	if err != nil {
		return nil, nil, err
	}

	return arena, Rank(arena, games, c.scoring, c.policy), nil
}

// PlayWord returns the member's game for one of the arena's words, creating
// it lazily. The caller must be a joined member and the arena must be open.
func (c *Controller) PlayWord(ctx context.Context, arenaID model.ArenaID, user model.Identity, wordIndex int) (*model.Game, error) {
	arena, err := c.storage.GetArena(ctx, arenaID)
	if err != nil {
		return nil, err
	}
	if err := c.gatePlay(arena, user); err != nil {
		return nil, err
	}

	return c.games.StartArenaGame(ctx, arena, user, wordIndex)
}

// Guess validates and applies a guess to one of the member's arena games.
// Validation failures are reported in the result, not as errors.
func (c *Controller) Guess(ctx context.Context, arenaID model.ArenaID, user model.Identity, wordIndex int, raw string) (*model.Game, model.ValidationResult, error) {
	arena, err := c.storage.GetArena(ctx, arenaID)
	if err != nil {
		return nil, "", err
	}
	if err := c.gatePlay(arena, user); err != nil {
		return nil, "", err
	}

	g, err := c.games.StartArenaGame(ctx, arena, user, wordIndex)
	if err != nil {
		return nil, "", err
	}
	if g.IsOver() {
		return nil, "", model.ErrGameOver
	}

	result := c.games.ValidateGuess(g, raw)
	if result != model.GuessValid {
		return g, result, nil
	}

	g, err = c.games.ApplyGuess(ctx, g, raw)
	if err != nil {
		return nil, "", err
	}
	return g, model.GuessValid, nil
}

// gatePlay enforces membership and the time window for playing arena words
func (c *Controller) gatePlay(arena *model.Arena, user model.Identity) error {
	if !ClassifyMembership(arena, user).CanPlay() {
		return model.ErrNotArenaMember
	}

	switch c.Availability(arena).Status {
	case model.AvailabilityPending:
		return model.ErrArenaNotStarted
	case model.AvailabilityEnded:
		return model.ErrArenaEnded
	}
	return nil
}

// generateArenaID draws random IDs until one is unused
func (c *Controller) generateArenaID(ctx context.Context) (model.ArenaID, error) {
	for attempt := 0; attempt < 10; attempt++ {
		id := model.ArenaID(c.random.String(arenaIDLength, arenaIDAlphabet))
		exists, err := c.storage.ArenaExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique arena ID")
}

func validateConfig(cfg model.ArenaConfig) error {
	if cfg.AudienceSize < 1 {
		return fmt.Errorf("%w: audience size must be at least 1", model.ErrInvalidArenaConfig)
	}
	if len(cfg.Audience) > cfg.AudienceSize {
		return fmt.Errorf("%w: audience list exceeds audience size", model.ErrInvalidArenaConfig)
	}
	if cfg.WordCount < 1 {
		return fmt.Errorf("%w: word count must be at least 1", model.ErrInvalidArenaConfig)
	}
	if cfg.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", model.ErrInvalidArenaConfig)
	}
	if cfg.SuddenDeath && cfg.AudienceSize != 2 {
		return fmt.Errorf("%w: sudden death requires exactly 2 participants", model.ErrInvalidArenaConfig)
	}
	for _, e := range cfg.Audience {
		if e.Provider == "" {
			return fmt.Errorf("%w: audience entry missing provider", model.ErrInvalidArenaConfig)
		}
		if e.UserID == "" && e.Username == "" {
			return fmt.Errorf("%w: audience entry needs a user id or username", model.ErrInvalidArenaConfig)
		}
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateArena(ctx context.Context, creator model.Identity, cfg model.ArenaConfig) (*model.Arena, error)
	GetArena(ctx context.Context, id model.ArenaID) (*model.Arena, error)
	Availability(arena *model.Arena) model.Availability
	Join(ctx context.Context, arenaID model.ArenaID, user model.Identity) (*model.Arena, error)
	Kick(ctx context.Context, arenaID model.ArenaID, requester model.Identity, target model.Identity) (*model.Arena, error)
	Standings(ctx context.Context, arenaID model.ArenaID) (*model.Arena, []model.Standing, error)
	PlayWord(ctx context.Context, arenaID model.ArenaID, user model.Identity, wordIndex int) (*model.Game, error)
	Guess(ctx context.Context, arenaID model.ArenaID, user model.Identity, wordIndex int, raw string) (*model.Game, model.ValidationResult, error)
}

var _ ControllerInterface = (*Controller)(nil)
