package memory

import (
	"context"
	"sync"

	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are stored and returned as copies so that version checks compare
// against what was actually saved, not a shared pointer.
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	games             map[gameKey]*model.Game
	arenas            map[model.ArenaID]*model.Arena
	dictionaryWords   []string
}

type gameKey struct {
	userID model.PlayerID
	key    model.GameKey
}

// copyGame deep-copies a game record. Slice and pointer fields must not be
// shared between the stored record and callers: a caller mutating its copy
// would otherwise change the stored record before SaveGame's version check
// ever runs.
func copyGame(g *model.Game) *model.Game {
	copied := *g
	copied.Guesses = append([]string(nil), g.Guesses...)
	copied.Evaluations = append([]model.EvaluatedGuess(nil), g.Evaluations...)
	if g.Arena != nil {
		arena := *g.Arena
		copied.Arena = &arena
	}
	if g.Custom != nil {
		custom := *g.Custom
		copied.Custom = &custom
	}
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		copied.CompletedAt = &t
	}
	return &copied
}

// copyArena deep-copies an arena record, for the same reason as copyGame.
func copyArena(a *model.Arena) *model.Arena {
	copied := *a
	copied.Config.Audience = append([]model.AudienceEntry(nil), a.Config.Audience...)
	copied.Members = append([]model.ArenaMember(nil), a.Members...)
	if a.Config.ScheduledStart != nil {
		t := *a.Config.ScheduledStart
		copied.Config.ScheduledStart = &t
	}
	if a.StartedAt != nil {
		t := *a.StartedAt
		copied.StartedAt = &t
	}
	if a.LastNotifiedAt != nil {
		t := *a.LastNotifiedAt
		copied.LastNotifiedAt = &t
	}
	return &copied
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		games:             make(map[gameKey]*model.Game),
		arenas:            make(map[model.ArenaID]*model.Arena),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := gameKey{userID: game.UserID, key: game.Key}
	stored, exists := s.games[k]
	if exists {
		if stored.Version != game.Version {
			return model.ErrConflict
		}
	} else if game.Version != 0 {
		return model.ErrConflict
	}

	next := copyGame(game)
	next.Version++
	s.games[k] = next
	game.Version = next.Version
	return nil
}

func (s *Storage) GetGame(ctx context.Context, userID model.PlayerID, key model.GameKey) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[gameKey{userID: userID, key: key}]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game), nil
}

func (s *Storage) GetGamesForUser(ctx context.Context, userID model.PlayerID) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for k, game := range s.games {
		if k.userID == userID {
			games = append(games, copyGame(game))
		}
	}
	return games, nil
}

func (s *Storage) GetGamesForArena(ctx context.Context, arenaID model.ArenaID) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.Arena != nil && game.Arena.ArenaID == arenaID {
			games = append(games, copyGame(game))
		}
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, userID model.PlayerID, key model.GameKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameKey{userID: userID, key: key})
	return nil
}

// Arena operations

func (s *Storage) SaveArena(ctx context.Context, arena *model.Arena) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.arenas[arena.ID]
	if exists {
		if stored.Version != arena.Version {
			return model.ErrConflict
		}
	} else if arena.Version != 0 {
		return model.ErrConflict
	}

	next := copyArena(arena)
	next.Version++
	s.arenas[arena.ID] = next
	arena.Version = next.Version
	return nil
}

func (s *Storage) GetArena(ctx context.Context, id model.ArenaID) (*model.Arena, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	arena, ok := s.arenas[id]
	if !ok {
		return nil, model.ErrArenaNotFound
	}
	return copyArena(arena), nil
}

func (s *Storage) ArenaExists(ctx context.Context, id model.ArenaID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.arenas[id]
	return ok, nil
}

func (s *Storage) DeleteArena(ctx context.Context, id model.ArenaID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.arenas, id)
	return nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
