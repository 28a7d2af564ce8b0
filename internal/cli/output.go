package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case GuessResult:
		o.printGuessResult(v)
	case Arena:
		o.printArena(v)
	case StandingsResult:
		o.printStandings(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// LetterMark response type
type LetterMark struct {
	Letter string `json:"letter"`
	Status string `json:"status"`
}

// GuessRow response type
type GuessRow struct {
	Word  string       `json:"word"`
	Marks []LetterMark `json:"marks"`
}

// Game response type
type Game struct {
	Key              string     `json:"key"`
	Daily            bool       `json:"daily,omitempty"`
	Status           string     `json:"status"`
	Guesses          []GuessRow `json:"guesses"`
	GuessCount       int        `json:"guess_count"`
	MaxGuesses       int        `json:"max_guesses"`
	HardMode         bool       `json:"hard_mode"`
	HardModeRequired bool       `json:"hard_mode_required,omitempty"`
	AllowRedo        bool       `json:"allow_redo,omitempty"`
	Secret           string     `json:"secret,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Result string `json:"result"`
	Game   Game   `json:"game"`
}

// Identity response type
type Identity struct {
	Provider string `json:"provider"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// ArenaMember response type
type ArenaMember struct {
	Identity Identity `json:"identity"`
	Kicked   bool     `json:"kicked,omitempty"`
}

// Availability response type
type Availability struct {
	Status string     `json:"status"`
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
}

// ArenaConfig response type
type ArenaConfig struct {
	AudienceSize    int  `json:"audience_size"`
	WordCount       int  `json:"word_count"`
	DurationMinutes int  `json:"duration_minutes,omitempty"`
	SuddenDeath     bool `json:"sudden_death,omitempty"`
}

// Arena response type
type Arena struct {
	ID           string        `json:"id"`
	Config       ArenaConfig   `json:"config"`
	Members      []ArenaMember `json:"members"`
	Availability Availability  `json:"availability"`
	Membership   string        `json:"membership,omitempty"`
}

// Standing response type
type Standing struct {
	Kind           string    `json:"kind"`
	Position       int       `json:"position,omitempty"`
	Identity       *Identity `json:"identity,omitempty"`
	Score          float64   `json:"score"`
	GamesPlayed    int       `json:"games_played"`
	GamesCompleted int       `json:"games_completed"`
	GamesWon       int       `json:"games_won"`
}

// StandingsResult response type
type StandingsResult struct {
	ArenaID      string       `json:"arena_id"`
	Availability Availability `json:"availability"`
	Standings    []Standing   `json:"standings"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.Key)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Guesses: %d/%d\n", g.GuessCount, g.MaxGuesses)
	if g.HardModeRequired {
		fmt.Println("Hard mode: required")
	} else if g.HardMode {
		fmt.Println("Hard mode: kept so far")
	}

	for _, row := range g.Guesses {
		o.printGuessRow(row)
	}

	if g.Secret != "" {
		fmt.Printf("The word was: %s\n", strings.ToUpper(g.Secret))
	}
}

// printGuessRow renders a guess and its marks:
// uppercase = correct spot, lowercase = in the word, dot = not in the word
func (o *Output) printGuessRow(row GuessRow) {
	var b strings.Builder
	for _, m := range row.Marks {
		switch m.Status {
		case "correct":
			b.WriteString(strings.ToUpper(m.Letter))
		case "wrong_position":
			b.WriteString(strings.ToLower(m.Letter))
		default:
			b.WriteString(".")
		}
		b.WriteString(" ")
	}
	fmt.Printf("  %s  %s\n", strings.ToUpper(row.Word), b.String())
}

func (o *Output) printGuessResult(g GuessResult) {
	if g.Result != "valid" {
		fmt.Printf("Guess rejected: %s\n", g.Result)
		return
	}
	o.printGame(g.Game)
}

func (o *Output) printArena(a Arena) {
	fmt.Printf("Arena: %s\n", a.ID)
	fmt.Printf("Status: %s\n", a.Availability.Status)
	fmt.Printf("Words: %d\n", a.Config.WordCount)
	fmt.Printf("Capacity: %d\n", a.Config.AudienceSize)
	if a.Config.SuddenDeath {
		fmt.Println("Sudden death: on")
	}
	if a.Availability.End != nil {
		fmt.Printf("Ends: %s\n", a.Availability.End.Format(time.RFC3339))
	}
	if a.Membership != "" {
		fmt.Printf("You: %s\n", a.Membership)
	}
	fmt.Printf("Members (%d):\n", len(a.Members))
	for _, m := range a.Members {
		kickedStr := ""
		if m.Kicked {
			kickedStr = " [kicked]"
		}
		fmt.Printf("  - %s (%s:%s)%s\n", m.Identity.Username, m.Identity.Provider, m.Identity.UserID, kickedStr)
	}
}

func (o *Output) printStandings(s StandingsResult) {
	fmt.Printf("Arena: %s (%s)\n", s.ArenaID, s.Availability.Status)
	for _, row := range s.Standings {
		switch row.Kind {
		case "ranked":
			fmt.Printf("  %d. %s  score %.2f  (%d won / %d completed / %d played)\n",
				row.Position, standingName(row), row.Score, row.GamesWon, row.GamesCompleted, row.GamesPlayed)
		case "member_pending":
			fmt.Printf("  -. %s  (joined, not played)\n", standingName(row))
		case "awaiting":
			fmt.Printf("  -. %s  (awaiting)\n", standingName(row))
		case "free_slot":
			fmt.Println("  -. <free slot>")
		}
	}
}

func standingName(s Standing) string {
	if s.Identity == nil {
		return "<unknown>"
	}
	if s.Identity.Username != "" {
		return s.Identity.Username
	}
	return fmt.Sprintf("%s:%s", s.Identity.Provider, s.Identity.UserID)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
