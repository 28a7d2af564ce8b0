package model

import (
	"fmt"
	"time"
)

// ArenaID is a human-readable identifier for joining arenas
type ArenaID string

// AudienceEntry pre-registers a participant for an arena. UserID may be empty
// when the entry was declared by username before the user id was known.
type AudienceEntry struct {
	Provider string   `json:"provider"`
	UserID   PlayerID `json:"user_id,omitempty"`
	Username string   `json:"username,omitempty"`
}

// Matches reports whether an identity satisfies this audience entry:
// same provider, and same user id when the entry specifies one, otherwise
// same username
func (e AudienceEntry) Matches(id Identity) bool {
	if e.Provider != id.Provider {
		return false
	}
	if e.UserID != "" {
		return e.UserID == id.UserID
	}
	return e.Username == id.Username
}

// ArenaMember is a joined participant. Members are append-only; Kicked is a
// soft flag that excludes a member from ranking and availability without
// shrinking history.
type ArenaMember struct {
	Identity Identity  `json:"identity"`
	JoinedAt time.Time `json:"joined_at"`
	Kicked   bool      `json:"kicked,omitempty"`
}

// ArenaConfig is the immutable configuration of an arena
type ArenaConfig struct {
	// AudienceSize bounds the total number of participants
	AudienceSize int `json:"audience_size"`
	// Audience optionally reserves slots for specific identities
	Audience []AudienceEntry `json:"audience,omitempty"`
	// WordCount is the number of words each participant plays
	WordCount int `json:"word_count"`
	// ScheduledStart is the start time; nil means the arena opens on first join
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	// DurationMinutes bounds play time from the start; 0 means unlimited
	DurationMinutes int `json:"duration_minutes,omitempty"`
	// SuddenDeath enables early decision for two-player arenas
	SuddenDeath bool `json:"sudden_death,omitempty"`
	// HardModeRequired makes hard-mode failures a guess validation error
	HardModeRequired bool `json:"hard_mode_required,omitempty"`
}

// Arena is a scheduled multi-word competition among a bounded set of
// participants. Config is immutable after creation; only Members, StartedAt
// and LastNotifiedAt change.
type Arena struct {
	ID      ArenaID
	Creator Identity
	Config  ArenaConfig

	Members        []ArenaMember
	StartedAt      *time.Time // set once, on first trigger
	LastNotifiedAt *time.Time

	CreatedAt time.Time

	// Version is the optimistic concurrency token checked by storage
	Version int64
}

// FindMember returns the non-kicked member with the given identity, or nil
func (a *Arena) FindMember(id Identity) *ArenaMember {
	for i := range a.Members {
		m := &a.Members[i]
		if !m.Kicked && m.Identity.Provider == id.Provider && m.Identity.UserID == id.UserID {
			return m
		}
	}
	return nil
}

// ActiveMembers returns all members that have not been kicked
func (a *Arena) ActiveMembers() []ArenaMember {
	var members []ArenaMember
	for _, m := range a.Members {
		if !m.Kicked {
			members = append(members, m)
		}
	}
	return members
}

// WordKey returns the game key for one of the arena's words
func (a *Arena) WordKey(wordIndex int) GameKey {
	return GameKey(fmt.Sprintf("arena-%s-%d", a.ID, wordIndex))
}

// MembershipType classifies how an identity relates to an arena
type MembershipType string

const (
	// MembershipAudience: pre-registered, not yet joined
	MembershipAudience MembershipType = "audience"
	// MembershipMember: joined via a pre-registered audience entry
	MembershipMember MembershipType = "member"
	// MembershipMemberFreeSlot: joined without having been pre-registered
	MembershipMemberFreeSlot MembershipType = "member_free_slot"
	// MembershipFreeSlot: not pre-registered but capacity remains
	MembershipFreeSlot MembershipType = "free_slot"
	// MembershipNone: cannot join
	MembershipNone MembershipType = "none"
)

// CanPlay reports whether this classification permits playing arena words
func (t MembershipType) CanPlay() bool {
	return t == MembershipMember || t == MembershipMemberFreeSlot
}

// AvailabilityStatus is the time-window state of an arena
type AvailabilityStatus string

const (
	AvailabilityPending AvailabilityStatus = "pending"
	AvailabilityOpen    AvailabilityStatus = "open"
	AvailabilityEnded   AvailabilityStatus = "ended"
)

// Availability is the resolved time window of an arena. Start is nil for an
// immediate arena that has not been triggered yet ("already open"); End is
// nil when the duration is unlimited.
type Availability struct {
	Status AvailabilityStatus
	Start  *time.Time
	End    *time.Time
}

// StandingKind distinguishes ranked rows from placeholder rows
type StandingKind string

const (
	StandingRanked        StandingKind = "ranked"
	StandingMemberPending StandingKind = "member_pending" // joined, no games yet
	StandingAwaiting      StandingKind = "awaiting"       // pre-registered, not joined
	StandingFreeSlot      StandingKind = "free_slot"
)

// Standing is one row of an arena's standings list
type Standing struct {
	Kind     StandingKind
	Position int // 1-based for ranked rows, 0 for placeholders
	Identity *Identity

	Score           float64
	GamesPlayed     int
	GamesCompleted  int
	GamesWon        int
	GuessTotal      int // guesses for won games plus the lost penalty per loss
	LastCompletedAt *time.Time
}
