package arena

import (
	"time"

	"github.com/samber/lo"

	"github.com/wordarena/wordarena-go/internal/model"
)

// ClassifyMembership determines how an identity relates to an arena:
// joined members are "member" (pre-registered) or "member_free_slot"
// (walked in), pre-registered identities that have not joined are
// "audience", anyone else gets a free slot while capacity remains.
func ClassifyMembership(arena *model.Arena, user model.Identity) model.MembershipType {
	inAudience := lo.SomeBy(arena.Config.Audience, func(e model.AudienceEntry) bool {
		return e.Matches(user)
	})

	if arena.FindMember(user) != nil {
		if inAudience {
			return model.MembershipMember
		}
		return model.MembershipMemberFreeSlot
	}

	if inAudience {
		return model.MembershipAudience
	}

	if FreeSlots(arena) > 0 {
		return model.MembershipFreeSlot
	}
	return model.MembershipNone
}

// FreeSlots returns the arena capacity not reserved for the explicit
// audience and not already taken by walk-in members
func FreeSlots(arena *model.Arena) int {
	walkIns := lo.CountBy(arena.ActiveMembers(), func(m model.ArenaMember) bool {
		return !lo.SomeBy(arena.Config.Audience, func(e model.AudienceEntry) bool {
			return e.Matches(m.Identity)
		})
	})
	return arena.Config.AudienceSize - len(arena.Config.Audience) - walkIns
}

// ResolveAvailability computes the arena's time-window status at the given
// instant. Start is the trigger time if the arena has started, otherwise the
// scheduled time; an immediate arena that nobody has joined yet has no start
// and counts as open.
func ResolveAvailability(arena *model.Arena, now time.Time) model.Availability {
	var start *time.Time
	if arena.StartedAt != nil {
		start = arena.StartedAt
	} else if arena.Config.ScheduledStart != nil {
		start = arena.Config.ScheduledStart
	}

	var end *time.Time
	if start != nil && arena.Config.DurationMinutes > 0 {
		e := start.Add(time.Duration(arena.Config.DurationMinutes) * time.Minute)
		end = &e
	}

	status := model.AvailabilityOpen
	switch {
	case start != nil && now.Before(*start):
		status = model.AvailabilityPending
	case end != nil && now.After(*end):
		status = model.AvailabilityEnded
	}

	return model.Availability{
		Status: status,
		Start:  start,
		End:    end,
	}
}

// AwaitingAudience returns the explicit audience entries not yet satisfied
// by a joined member
func AwaitingAudience(arena *model.Arena) []model.AudienceEntry {
	members := arena.ActiveMembers()
	return lo.Filter(arena.Config.Audience, func(e model.AudienceEntry, _ int) bool {
		return !lo.SomeBy(members, func(m model.ArenaMember) bool {
			return e.Matches(m.Identity)
		})
	})
}
