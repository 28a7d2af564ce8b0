package request

import "time"

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	Guess string `json:"guess"`
}

// CreateCustomGameRequest is the request body for creating a custom game
type CreateCustomGameRequest struct {
	Secret    string `json:"secret"`
	Message   string `json:"message,omitempty"`
	AllowRedo bool   `json:"allow_redo,omitempty"`
}

// AudienceEntry pre-registers a participant when creating an arena.
// UserID takes precedence over Username when both are given.
type AudienceEntry struct {
	Provider string `json:"provider"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// CreateArenaRequest is the request body for creating an arena
type CreateArenaRequest struct {
	AudienceSize     int             `json:"audience_size"`
	Audience         []AudienceEntry `json:"audience,omitempty"`
	WordCount        int             `json:"word_count"`
	ScheduledStart   *time.Time      `json:"scheduled_start,omitempty"`
	DurationMinutes  int             `json:"duration_minutes,omitempty"`
	SuddenDeath      bool            `json:"sudden_death,omitempty"`
	HardModeRequired bool            `json:"hard_mode_required,omitempty"`
}

// KickRequest is the request body for kicking an arena member
type KickRequest struct {
	Provider string `json:"provider"`
	UserID   string `json:"user_id"`
}
