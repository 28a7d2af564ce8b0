package redis

import (
	"fmt"

	"github.com/wordarena/wordarena-go/internal/model"
)

// Key prefix for all arena game data
const keyPrefix = "wordarena"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameRecordKey returns the Redis key for a Game
func gameRecordKey(userID model.PlayerID, key model.GameKey) string {
	return fmt.Sprintf("%s:game:%s:%s", keyPrefix, userID, key)
}

// gamesForUserIndexKey returns the Redis key for the SET of a user's games
func gamesForUserIndexKey(userID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:games_for_user:%s", keyPrefix, userID)
}

// gamesForArenaIndexKey returns the Redis key for the SET of an arena's games
func gamesForArenaIndexKey(arenaID model.ArenaID) string {
	return fmt.Sprintf("%s:idx:games_for_arena:%s", keyPrefix, arenaID)
}

// arenaKey returns the Redis key for an Arena
func arenaKey(id model.ArenaID) string {
	return fmt.Sprintf("%s:arena:%s", keyPrefix, id)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
