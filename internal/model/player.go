package model

import "time"

// PlayerID uniquely identifies a player within an identity provider
type PlayerID string

// Identity locates a player across identity providers. Arena audiences may
// pre-register an entry by username alone, before the user id is known.
type Identity struct {
	Provider string   `json:"provider"`
	UserID   PlayerID `json:"user_id,omitempty"`
	Username string   `json:"username"`
}

// Key returns a stable string form used for grouping and storage keys
func (id Identity) Key() string {
	return id.Provider + ":" + string(id.UserID)
}

// Player represents a game participant
type Player struct {
	ID          PlayerID
	Provider    string // identity provider ("local" for registered, "guest" otherwise)
	Username    string
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// Identity returns the player's identity record
func (p *Player) Identity() Identity {
	return Identity{
		Provider: p.Provider,
		UserID:   p.ID,
		Username: p.Username,
	}
}

// RegisteredPlayer extends Player with authentication data
// Stored separately for security (password never in memory with session)
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
