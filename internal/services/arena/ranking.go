package arena

import (
	"sort"
	"time"

	"github.com/wordarena/wordarena-go/internal/model"
)

// ScoringConfig holds the penalty constants of the ranking formula.
// Explicit and injected so tests can pin their own values.
type ScoringConfig struct {
	// LostPenalty is the effective guess count charged for a lost game
	// (one past the guess limit)
	LostPenalty int
	// UnplayedPenalty is charged for each word a player never completed
	// (one worse than losing)
	UnplayedPenalty int
}

// DefaultScoringConfig returns the standard penalty constants
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		LostPenalty:     model.MaxGuesses + 2,
		UnplayedPenalty: model.MaxGuesses + 3,
	}
}

// SuddenDeathPolicy decides the word index beyond which a two-player arena
// is already decided. Behind an interface so the exact rule can be swapped
// and tested independently of the aggregation.
type SuddenDeathPolicy interface {
	// Cutoff returns the earliest word index at which the match is decided,
	// or false when no truncation applies
	Cutoff(arena *model.Arena, gamesByPlayer map[model.PlayerID][]*model.Game) (int, bool)
}

// BestPossiblePolicy truncates once one player's worst-possible final total
// still beats the other player's best-possible final total, considering only
// word indices both players have finished.
type BestPossiblePolicy struct {
	cfg ScoringConfig
}

// NewBestPossiblePolicy creates the default sudden-death policy
func NewBestPossiblePolicy(cfg ScoringConfig) *BestPossiblePolicy {
	return &BestPossiblePolicy{cfg: cfg}
}

func (p *BestPossiblePolicy) Cutoff(arena *model.Arena, gamesByPlayer map[model.PlayerID][]*model.Game) (int, bool) {
	// Sudden death is only meaningful head-to-head
	if len(gamesByPlayer) != 2 {
		return 0, false
	}

	players := make([]model.PlayerID, 0, 2)
	for id := range gamesByPlayer {
		players = append(players, id)
	}

	wordCount := arena.Config.WordCount
	aUnits := p.unitsByIndex(gamesByPlayer[players[0]], wordCount)
	bUnits := p.unitsByIndex(gamesByPlayer[players[1]], wordCount)

	var aSum, bSum int
	for k := 0; k < wordCount-1; k++ {
		// Both players must have a decided game at every index up to k
		if aUnits[k] == 0 || bUnits[k] == 0 {
			return 0, false
		}
		aSum += aUnits[k]
		bSum += bUnits[k]

		remaining := wordCount - k - 1
		aWorst := aSum + remaining*p.cfg.UnplayedPenalty
		aBest := aSum + remaining // best case: every remaining word won in one
		bWorst := bSum + remaining*p.cfg.UnplayedPenalty
		bBest := bSum + remaining

		if aWorst < bBest || bWorst < aBest {
			return k, true
		}
	}

	return 0, false
}

// unitsByIndex maps each word index to the player's effective guess count
// there; 0 marks an undecided or unplayed index
func (p *BestPossiblePolicy) unitsByIndex(games []*model.Game, wordCount int) []int {
	units := make([]int, wordCount)
	for _, g := range games {
		if g.Arena == nil || g.Arena.WordIndex >= wordCount {
			continue
		}
		switch g.Status {
		case model.GameStatusWon:
			units[g.Arena.WordIndex] = g.GuessCount()
		case model.GameStatusLost:
			units[g.Arena.WordIndex] = p.cfg.LostPenalty
		}
	}
	return units
}

var _ SuddenDeathPolicy = (*BestPossiblePolicy)(nil)

// playerAggregate accumulates one player's results across the arena's words
type playerAggregate struct {
	identity        model.Identity
	played          int
	completed       int
	won             int
	wonGuessSum     int
	lastCompletedAt *time.Time
}

// Rank produces the ranked, tie-broken standings for an arena from a
// point-in-time snapshot of its games. Pure and side-effect free; safe to
// recompute concurrently.
func Rank(arena *model.Arena, games []*model.Game, cfg ScoringConfig, policy SuddenDeathPolicy) []model.Standing {
	members := arena.ActiveMembers()
	identityByUser := make(map[model.PlayerID]model.Identity, len(members))
	for _, m := range members {
		identityByUser[m.Identity.UserID] = m.Identity
	}

	// Group this arena's games by player, kicked members excluded
	byPlayer := make(map[model.PlayerID][]*model.Game)
	for _, g := range games {
		if g.Arena == nil || g.Arena.ArenaID != arena.ID {
			continue
		}
		if _, ok := identityByUser[g.UserID]; !ok {
			continue
		}
		byPlayer[g.UserID] = append(byPlayer[g.UserID], g)
	}
	for _, playerGames := range byPlayer {
		sort.Slice(playerGames, func(i, j int) bool {
			return playerGames[i].Arena.WordIndex < playerGames[j].Arena.WordIndex
		})
	}

	// Sudden death: drop games beyond the decided index before aggregating
	if arena.Config.SuddenDeath && policy != nil {
		if cutoff, ok := policy.Cutoff(arena, byPlayer); ok {
			for id, playerGames := range byPlayer {
				kept := playerGames[:0]
				for _, g := range playerGames {
					if g.Arena.WordIndex <= cutoff {
						kept = append(kept, g)
					}
				}
				byPlayer[id] = kept
			}
		}
	}

	wordCount := arena.Config.WordCount
	ranked := make([]model.Standing, 0, len(byPlayer))
	for userID, playerGames := range byPlayer {
		agg := aggregate(identityByUser[userID], playerGames)

		score := float64((wordCount-agg.completed)*cfg.UnplayedPenalty+
			(agg.completed-agg.won)*cfg.LostPenalty+
			agg.wonGuessSum) / float64(wordCount)

		identity := agg.identity
		ranked = append(ranked, model.Standing{
			Kind:            model.StandingRanked,
			Identity:        &identity,
			Score:           score,
			GamesPlayed:     agg.played,
			GamesCompleted:  agg.completed,
			GamesWon:        agg.won,
			GuessTotal:      agg.wonGuessSum + (agg.completed-agg.won)*cfg.LostPenalty,
			LastCompletedAt: agg.lastCompletedAt,
		})
	}

	sortStandings(ranked)
	assignPositions(ranked)

	// Placeholder rows: joined members with no games, then awaiting
	// audience, then remaining free slots
	for _, m := range members {
		if _, ok := byPlayer[m.Identity.UserID]; ok {
			continue
		}
		identity := m.Identity
		ranked = append(ranked, model.Standing{
			Kind:     model.StandingMemberPending,
			Identity: &identity,
		})
	}
	for _, e := range AwaitingAudience(arena) {
		identity := model.Identity{
			Provider: e.Provider,
			UserID:   e.UserID,
			Username: e.Username,
		}
		ranked = append(ranked, model.Standing{
			Kind:     model.StandingAwaiting,
			Identity: &identity,
		})
	}
	for i := 0; i < FreeSlots(arena); i++ {
		ranked = append(ranked, model.Standing{Kind: model.StandingFreeSlot})
	}

	return ranked
}

func aggregate(identity model.Identity, games []*model.Game) playerAggregate {
	agg := playerAggregate{identity: identity}
	for _, g := range games {
		agg.played++
		switch g.Status {
		case model.GameStatusWon:
			agg.completed++
			agg.won++
			agg.wonGuessSum += g.GuessCount()
		case model.GameStatusLost:
			agg.completed++
		default:
			continue
		}
		if g.CompletedAt != nil {
			if agg.lastCompletedAt == nil || g.CompletedAt.After(*agg.lastCompletedAt) {
				t := *g.CompletedAt
				agg.lastCompletedAt = &t
			}
		}
	}
	return agg
}

// sortStandings orders by ascending score, then fewer completed games
// (efficiency over volume), then earlier last completion
func sortStandings(standings []model.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.GamesCompleted != b.GamesCompleted {
			return a.GamesCompleted < b.GamesCompleted
		}
		switch {
		case a.LastCompletedAt == nil:
			return false
		case b.LastCompletedAt == nil:
			return true
		default:
			return a.LastCompletedAt.Before(*b.LastCompletedAt)
		}
	})
}

// assignPositions applies competition ranking: equal score shares a
// position, otherwise position is one plus the number of strictly better
// entries before it
func assignPositions(standings []model.Standing) {
	for i := range standings {
		if i > 0 && standings[i].Score == standings[i-1].Score {
			standings[i].Position = standings[i-1].Position
		} else {
			standings[i].Position = i + 1
		}
	}
}
