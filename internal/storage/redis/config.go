package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types
	GuestPlayerTTL time.Duration
	GameTTL        time.Duration
	ArenaTTL       time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		// Guests and their games age out; arenas live longer so standings
		// stay readable after the competition ends
		GuestPlayerTTL: 24 * time.Hour,
		GameTTL:        14 * 24 * time.Hour,
		ArenaTTL:       30 * 24 * time.Hour,
	}
}
