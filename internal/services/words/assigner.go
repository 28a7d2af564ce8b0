// Package words assigns secret words deterministically. The same identity,
// game key and seed always produce the same secret, so assignments are
// replayable and cannot silently change on retry.
package words

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/wordarena/wordarena-go/internal/model"
)

// Config holds the word assignment inputs
type Config struct {
	// Seed is the fixed secret seed mixed into every assignment
	Seed string
	// Answers is the candidate secret list (distinct from the larger
	// accepted-guess dictionary)
	Answers []string
}

// Assigner deterministically maps (identity, game key) pairs to secrets
type Assigner struct {
	cfg Config
}

// NewAssigner creates an Assigner from the given config
func NewAssigner(cfg Config) *Assigner {
	return &Assigner{cfg: cfg}
}

// DailyKey returns the game key for the calendar day of t (UTC)
func DailyKey(t time.Time) model.GameKey {
	return model.GameKey("daily-" + t.UTC().Format("2006-01-02"))
}

// WordForUser returns the secret for a user's game under the given key.
// Daily words differ per user so that sharing a result does not spoil others.
func (a *Assigner) WordForUser(id model.Identity, key model.GameKey) string {
	return a.pick(id.Provider + "|" + string(id.UserID) + "|" + string(key))
}

// WordForArena returns the secret for one of an arena's words. Every member
// of the arena plays the same secret at the same word index.
func (a *Assigner) WordForArena(arenaID model.ArenaID, wordIndex int) string {
	return a.pick(fmt.Sprintf("arena|%s|%d", arenaID, wordIndex))
}

func (a *Assigner) pick(subject string) string {
	mac := hmac.New(sha256.New, []byte(a.cfg.Seed))
	mac.Write([]byte(subject))
	sum := mac.Sum(nil)

	n := binary.BigEndian.Uint64(sum[:8])
	word := a.cfg.Answers[n%uint64(len(a.cfg.Answers))]
	return strings.ToLower(word)
}
