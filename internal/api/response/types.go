package response

import (
	"time"

	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		Provider:    p.Provider,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Identity represents a cross-provider player identity
type Identity struct {
	Provider string `json:"provider"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// IdentityFromModel converts model.Identity
func IdentityFromModel(id model.Identity) Identity {
	return Identity{
		Provider: id.Provider,
		UserID:   string(id.UserID),
		Username: id.Username,
	}
}

// LetterMark is the per-letter result of an evaluated guess
type LetterMark struct {
	Letter string `json:"letter"`
	Status string `json:"status"`
}

// GuessRow pairs a guessed word with its evaluation
type GuessRow struct {
	Word  string       `json:"word"`
	Marks []LetterMark `json:"marks"`
}

// GuessRowFromModel converts a guess and its evaluation
func GuessRowFromModel(word string, eval model.EvaluatedGuess) GuessRow {
	marks := make([]LetterMark, len(eval))
	for i, m := range eval {
		marks[i] = LetterMark{
			Letter: string(m.Letter),
			Status: string(m.Status),
		}
	}
	return GuessRow{Word: word, Marks: marks}
}

// ArenaOrigin records which arena word a game belongs to
type ArenaOrigin struct {
	ArenaID   string `json:"arena_id"`
	WordIndex int    `json:"word_index"`
}

// CustomOrigin records the author of a custom game
type CustomOrigin struct {
	AuthorID string `json:"author_id"`
	Message  string `json:"message,omitempty"`
}

// Game represents a game in API responses. The secret is included only once
// the game is over.
type Game struct {
	Key              string        `json:"key"`
	Daily            bool          `json:"daily,omitempty"`
	Status           string        `json:"status"`
	Guesses          []GuessRow    `json:"guesses"`
	GuessCount       int           `json:"guess_count"`
	MaxGuesses       int           `json:"max_guesses"`
	WordLength       int           `json:"word_length"`
	HardMode         bool          `json:"hard_mode"`
	HardModeRequired bool          `json:"hard_mode_required,omitempty"`
	AllowRedo        bool          `json:"allow_redo,omitempty"`
	Secret           string        `json:"secret,omitempty"`
	Arena            *ArenaOrigin  `json:"arena,omitempty"`
	Custom           *CustomOrigin `json:"custom,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	guesses := make([]GuessRow, len(g.Guesses))
	for i, word := range g.Guesses {
		guesses[i] = GuessRowFromModel(word, g.Evaluations[i])
	}

	var arena *ArenaOrigin
	if g.Arena != nil {
		arena = &ArenaOrigin{
			ArenaID:   string(g.Arena.ArenaID),
			WordIndex: g.Arena.WordIndex,
		}
	}

	var custom *CustomOrigin
	if g.Custom != nil {
		custom = &CustomOrigin{
			AuthorID: string(g.Custom.AuthorID),
			Message:  g.Custom.Message,
		}
	}

	var secret string
	if g.IsOver() {
		secret = g.Secret
	}

	return Game{
		Key:              string(g.Key),
		Daily:            g.Daily,
		Status:           string(g.Status),
		Guesses:          guesses,
		GuessCount:       g.GuessCount(),
		MaxGuesses:       model.MaxGuesses,
		WordLength:       model.WordLength,
		HardMode:         g.HardMode,
		HardModeRequired: g.HardModeRequired,
		AllowRedo:        g.AllowRedo,
		Secret:           secret,
		Arena:            arena,
		Custom:           custom,
		CreatedAt:        g.CreatedAt,
		CompletedAt:      g.CompletedAt,
	}
}

// GuessResponse reports the outcome of a guess attempt. Result is "valid"
// when the guess was applied; any other value means the guess was rejected
// and the game is unchanged.
type GuessResponse struct {
	Result string `json:"result"`
	Game   Game   `json:"game"`
}

// ArenaMember represents a joined arena participant
type ArenaMember struct {
	Identity Identity  `json:"identity"`
	JoinedAt time.Time `json:"joined_at"`
	Kicked   bool      `json:"kicked,omitempty"`
}

// ArenaConfig represents an arena's configuration
type ArenaConfig struct {
	AudienceSize     int        `json:"audience_size"`
	Audience         []Identity `json:"audience,omitempty"`
	WordCount        int        `json:"word_count"`
	ScheduledStart   *time.Time `json:"scheduled_start,omitempty"`
	DurationMinutes  int        `json:"duration_minutes,omitempty"`
	SuddenDeath      bool       `json:"sudden_death,omitempty"`
	HardModeRequired bool       `json:"hard_mode_required,omitempty"`
}

// Availability is the resolved time window of an arena
type Availability struct {
	Status string     `json:"status"`
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
}

// AvailabilityFromModel converts model.Availability
func AvailabilityFromModel(a model.Availability) Availability {
	return Availability{
		Status: string(a.Status),
		Start:  a.Start,
		End:    a.End,
	}
}

// Arena represents an arena in API responses
type Arena struct {
	ID           string        `json:"id"`
	Creator      Identity      `json:"creator"`
	Config       ArenaConfig   `json:"config"`
	Members      []ArenaMember `json:"members"`
	Availability Availability  `json:"availability"`
	Membership   string        `json:"membership,omitempty"`
	StartedAt    *time.Time    `json:"started_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ArenaFromModel converts a model.Arena plus its resolved availability and
// the caller's membership classification
func ArenaFromModel(a *model.Arena, availability model.Availability, membership model.MembershipType) Arena {
	audience := make([]Identity, len(a.Config.Audience))
	for i, e := range a.Config.Audience {
		audience[i] = Identity{
			Provider: e.Provider,
			UserID:   string(e.UserID),
			Username: e.Username,
		}
	}

	members := make([]ArenaMember, len(a.Members))
	for i, m := range a.Members {
		members[i] = ArenaMember{
			Identity: IdentityFromModel(m.Identity),
			JoinedAt: m.JoinedAt,
			Kicked:   m.Kicked,
		}
	}

	return Arena{
		ID:      string(a.ID),
		Creator: IdentityFromModel(a.Creator),
		Config: ArenaConfig{
			AudienceSize:     a.Config.AudienceSize,
			Audience:         audience,
			WordCount:        a.Config.WordCount,
			ScheduledStart:   a.Config.ScheduledStart,
			DurationMinutes:  a.Config.DurationMinutes,
			SuddenDeath:      a.Config.SuddenDeath,
			HardModeRequired: a.Config.HardModeRequired,
		},
		Members:      members,
		Availability: AvailabilityFromModel(availability),
		Membership:   string(membership),
		StartedAt:    a.StartedAt,
		CreatedAt:    a.CreatedAt,
	}
}

// Standing is one row of an arena's standings
type Standing struct {
	Kind            string     `json:"kind"`
	Position        int        `json:"position,omitempty"`
	Identity        *Identity  `json:"identity,omitempty"`
	Score           float64    `json:"score"`
	GamesPlayed     int        `json:"games_played"`
	GamesCompleted  int        `json:"games_completed"`
	GamesWon        int        `json:"games_won"`
	GuessTotal      int        `json:"guess_total"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// StandingsResponse is the response for the arena standings endpoint
type StandingsResponse struct {
	ArenaID      string       `json:"arena_id"`
	Availability Availability `json:"availability"`
	Standings    []Standing   `json:"standings"`
}

// StandingFromModel converts a model.Standing
func StandingFromModel(s model.Standing) Standing {
	var identity *Identity
	if s.Identity != nil {
		id := IdentityFromModel(*s.Identity)
		identity = &id
	}
	return Standing{
		Kind:            string(s.Kind),
		Position:        s.Position,
		Identity:        identity,
		Score:           s.Score,
		GamesPlayed:     s.GamesPlayed,
		GamesCompleted:  s.GamesCompleted,
		GamesWon:        s.GamesWon,
		GuessTotal:      s.GuessTotal,
		LastCompletedAt: s.LastCompletedAt,
	}
}
