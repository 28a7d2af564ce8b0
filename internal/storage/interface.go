package storage

import (
	"context"

	"github.com/wordarena/wordarena-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Game and Arena records carry a Version token: a Save checks that the stored
// version still matches the record's and returns model.ErrConflict otherwise.
// This is what serializes concurrent guesses on one game and concurrent joins
// racing for an arena's last slot.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game operations. Games are keyed by (user, game key); SaveGame
	// increments the record's Version on success.
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, userID model.PlayerID, key model.GameKey) (*model.Game, error)
	GetGamesForUser(ctx context.Context, userID model.PlayerID) ([]*model.Game, error)
	GetGamesForArena(ctx context.Context, arenaID model.ArenaID) ([]*model.Game, error)
	DeleteGame(ctx context.Context, userID model.PlayerID, key model.GameKey) error

	// Arena operations. SaveArena has the same versioning contract as
	// SaveGame.
	SaveArena(ctx context.Context, arena *model.Arena) error
	GetArena(ctx context.Context, id model.ArenaID) (*model.Arena, error)
	ArenaExists(ctx context.Context, id model.ArenaID) (bool, error)
	DeleteArena(ctx context.Context, id model.ArenaID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
