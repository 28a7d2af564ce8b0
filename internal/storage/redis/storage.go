package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Versioned records (games, arenas) are saved inside WATCH transactions so a
// concurrent writer fails the save with model.ErrConflict instead of
// clobbering it.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	key := gameRecordKey(game.UserID, game.Key)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkVersion(ctx, tx, key, game.Version); err != nil {
			return err
		}

		next := *game
		next.Version++
		data, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		userIdx := gamesForUserIndexKey(game.UserID)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.GameTTL)
			pipe.SAdd(ctx, userIdx, key)
			pipe.Expire(ctx, userIdx, s.cfg.GameTTL) // Keep index TTL in sync
			if game.Arena != nil {
				arenaIdx := gamesForArenaIndexKey(game.Arena.ArenaID)
				pipe.SAdd(ctx, arenaIdx, key)
				pipe.Expire(ctx, arenaIdx, s.cfg.ArenaTTL)
			}
			return nil
		})
		if err != nil {
			return err
		}

		game.Version = next.Version
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrConflict
	}
	return err
}

func (s *Storage) GetGame(ctx context.Context, userID model.PlayerID, key model.GameKey) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameRecordKey(userID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetGamesForUser(ctx context.Context, userID model.PlayerID) ([]*model.Game, error) {
	return s.gamesFromIndex(ctx, gamesForUserIndexKey(userID))
}

func (s *Storage) GetGamesForArena(ctx context.Context, arenaID model.ArenaID) ([]*model.Game, error) {
	return s.gamesFromIndex(ctx, gamesForArenaIndexKey(arenaID))
}

func (s *Storage) gamesFromIndex(ctx context.Context, indexKey string) ([]*model.Game, error) {
	gameKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(gameKeys) == 0 {
		return []*model.Game{}, nil
	}

	// Fetch all games in one round trip
	values, err := s.client.MGet(ctx, gameKeys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Game may have expired
		}
		var game model.Game
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}

	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, userID model.PlayerID, key model.GameKey) error {
	recordKey := gameRecordKey(userID, key)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, recordKey)
	pipe.SRem(ctx, gamesForUserIndexKey(userID), recordKey)
	_, err := pipe.Exec(ctx)
	return err
}

// Arena operations

func (s *Storage) SaveArena(ctx context.Context, arena *model.Arena) error {
	key := arenaKey(arena.ID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkVersion(ctx, tx, key, arena.Version); err != nil {
			return err
		}

		next := *arena
		next.Version++
		data, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.ArenaTTL)
			return nil
		})
		if err != nil {
			return err
		}

		arena.Version = next.Version
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrConflict
	}
	return err
}

func (s *Storage) GetArena(ctx context.Context, id model.ArenaID) (*model.Arena, error) {
	data, err := s.client.Get(ctx, arenaKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrArenaNotFound
		}
		return nil, err
	}

	var arena model.Arena
	if err := json.Unmarshal(data, &arena); err != nil {
		return nil, err
	}
	return &arena, nil
}

func (s *Storage) ArenaExists(ctx context.Context, id model.ArenaID) (bool, error) {
	exists, err := s.client.Exists(ctx, arenaKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) DeleteArena(ctx context.Context, id model.ArenaID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, arenaKey(id))
	pipe.Del(ctx, gamesForArenaIndexKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

// checkVersion compares the stored record's version against the one the
// caller read. Both games and arenas serialize their version in the same
// field, so a minimal probe struct suffices.
func checkVersion(ctx context.Context, tx *redis.Tx, key string, version int64) error {
	data, err := tx.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		if version != 0 {
			return model.ErrConflict
		}
		return nil
	case err != nil:
		return err
	}

	var probe struct {
		Version int64
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Version != version {
		return model.ErrConflict
	}
	return nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	key := dictionaryKey()

	// Check if dictionary exists
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	// Get all words from the set
	words, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	key := dictionaryKey()

	// Delete existing dictionary and add new words atomically
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		// Convert []string to []interface{} for SAdd
		members := make([]interface{}, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
