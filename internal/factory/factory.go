package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/wordarena/wordarena-go/internal/dependencies/clock"
	"github.com/wordarena/wordarena-go/internal/dependencies/random"
	"github.com/wordarena/wordarena-go/internal/services/arena"
	"github.com/wordarena/wordarena-go/internal/services/auth"
	"github.com/wordarena/wordarena-go/internal/services/dictionary"
	"github.com/wordarena/wordarena-go/internal/services/game"
	"github.com/wordarena/wordarena-go/internal/services/words"
	"github.com/wordarena/wordarena-go/internal/storage"
	"github.com/wordarena/wordarena-go/internal/storage/memory"
	redisstorage "github.com/wordarena/wordarena-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	WordAssigner      *words.Assigner
	GameController    *game.Controller
	ArenaController   *arena.Controller
	AuthService       *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Seed is the secret seed for deterministic word assignment
	Seed string
	// Answers is the candidate secret word list
	Answers []string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Scoring holds the arena ranking penalties (optional)
	// If zero value, defaults to arena.DefaultScoringConfig()
	Scoring arena.ScoringConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// The word assigner indexes into this list; it must never be empty
	if len(cfg.Answers) == 0 {
		return nil, errors.New("at least one answer word is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	scoring := cfg.Scoring
	if scoring.LostPenalty == 0 && scoring.UnplayedPenalty == 0 {
		scoring = arena.DefaultScoringConfig()
	}

	assigner := words.NewAssigner(words.Config{
		Seed:    cfg.Seed,
		Answers: cfg.Answers,
	})

	return newWithDependencies(store, clk, rnd, assigner, authCfg, scoring, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	assigner *words.Assigner,
	authCfg auth.Config,
	scoring arena.ScoringConfig,
	logger *slog.Logger,
) *App {
	// Create services
	dictService := dictionary.New(store)
	gameController := game.NewController(store, dictService, assigner, clk, logger)
	arenaController := arena.NewController(
		store,
		gameController,
		clk,
		rnd,
		logger,
		scoring,
		arena.NewBestPossiblePolicy(scoring),
	)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		WordAssigner:      assigner,
		GameController:    gameController,
		ArenaController:   arenaController,
		AuthService:       authService,
	}
}
