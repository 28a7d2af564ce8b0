package arena

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordarena/wordarena-go/internal/dependencies/mocks"
	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/services/dictionary"
	"github.com/wordarena/wordarena-go/internal/services/game"
	"github.com/wordarena/wordarena-go/internal/services/words"
	"github.com/wordarena/wordarena-go/internal/storage/memory"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	assigner   *words.Assigner
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context

	creator model.Identity
	alice   model.Identity
	bob     model.Identity
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	dictService := dictionary.New(s.storage)
	s.assigner = words.NewAssigner(words.Config{
		Seed:    "arena-test-seed",
		Answers: []string{"crane", "slate", "grant", "stare", "shale"},
	})
	s.clock = mocks.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	games := game.NewController(s.storage, dictService, s.assigner, s.clock, logger)
	scoring := DefaultScoringConfig()
	s.controller = NewController(s.storage, games, s.clock, s.random, logger,
		scoring, NewBestPossiblePolicy(scoring))
	s.ctx = context.Background()

	s.creator = model.Identity{Provider: "local", UserID: "creator-1", Username: "carol"}
	s.alice = model.Identity{Provider: "local", UserID: "player-a", Username: "alice"}
	s.bob = model.Identity{Provider: "guest", UserID: "player-b", Username: "player-b"}

	_ = dictService.LoadWords([]string{
		"crane", "slate", "grant", "stare", "shale", "trace", "brace", "about",
	})
}

func (s *ControllerSuite) createArena(cfg model.ArenaConfig) *model.Arena {
	s.random.QueueString("ARENA2")
	arena, err := s.controller.CreateArena(s.ctx, s.creator, cfg)
	s.Require().NoError(err)
	return arena
}

func (s *ControllerSuite) defaultConfig() model.ArenaConfig {
	return model.ArenaConfig{AudienceSize: 2, WordCount: 3}
}

// CreateArena tests

func (s *ControllerSuite) TestCreateArenaSucceeds() {
	arena := s.createArena(s.defaultConfig())

	s.Equal(model.ArenaID("ARENA2"), arena.ID)
	s.Equal(s.creator, arena.Creator)
	s.Equal(s.clock.Now(), arena.CreatedAt)
	s.Empty(arena.Members)
	s.Nil(arena.StartedAt)

	stored, err := s.controller.GetArena(s.ctx, arena.ID)
	s.Require().NoError(err)
	s.Equal(arena.ID, stored.ID)
}

func (s *ControllerSuite) TestCreateArenaRetriesOnIDCollision() {
	taken := s.createArena(s.defaultConfig())
	s.Require().Equal(model.ArenaID("ARENA2"), taken.ID)

	s.random.QueueString("ARENA2", "FRESH3")
	arena, err := s.controller.CreateArena(s.ctx, s.creator, s.defaultConfig())
	s.Require().NoError(err)
	s.Equal(model.ArenaID("FRESH3"), arena.ID)
}

func (s *ControllerSuite) TestCreateArenaRejectsBadConfig() {
	cases := []struct {
		name string
		cfg  model.ArenaConfig
	}{
		{"zero audience size", model.ArenaConfig{AudienceSize: 0, WordCount: 3}},
		{"zero word count", model.ArenaConfig{AudienceSize: 2, WordCount: 0}},
		{"negative duration", model.ArenaConfig{AudienceSize: 2, WordCount: 3, DurationMinutes: -1}},
		{"sudden death without two players", model.ArenaConfig{AudienceSize: 4, WordCount: 3, SuddenDeath: true}},
		{"audience exceeds size", model.ArenaConfig{
			AudienceSize: 1,
			WordCount:    3,
			Audience: []model.AudienceEntry{
				{Provider: "local", UserID: "a"},
				{Provider: "local", UserID: "b"},
			},
		}},
		{"audience entry missing provider", model.ArenaConfig{
			AudienceSize: 2,
			WordCount:    3,
			Audience:     []model.AudienceEntry{{UserID: "a"}},
		}},
		{"audience entry missing identity", model.ArenaConfig{
			AudienceSize: 2,
			WordCount:    3,
			Audience:     []model.AudienceEntry{{Provider: "local"}},
		}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.controller.CreateArena(s.ctx, s.creator, tc.cfg)
			s.ErrorIs(err, model.ErrInvalidArenaConfig)
		})
	}
}

// Join tests

func (s *ControllerSuite) TestJoinAddsMemberAndStartsImmediateArena() {
	arena := s.createArena(s.defaultConfig())

	joined, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	s.Require().Len(joined.Members, 1)
	s.Equal(s.alice, joined.Members[0].Identity)
	s.Equal(s.clock.Now(), joined.Members[0].JoinedAt)
	s.Require().NotNil(joined.StartedAt)
	s.Equal(s.clock.Now(), *joined.StartedAt)
}

func (s *ControllerSuite) TestJoinScheduledArenaDoesNotTriggerStart() {
	cfg := s.defaultConfig()
	start := s.clock.Now().Add(time.Hour)
	cfg.ScheduledStart = &start
	arena := s.createArena(cfg)

	joined, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)
	s.Nil(joined.StartedAt)
}

func (s *ControllerSuite) TestJoinTwiceFails() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, arena.ID, s.alice)
	s.ErrorIs(err, model.ErrAlreadyJoined)
}

func (s *ControllerSuite) TestJoinFullArenaFails() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)
	_, err = s.controller.Join(s.ctx, arena.ID, s.bob)
	s.Require().NoError(err)

	late := model.Identity{Provider: "local", UserID: "player-c", Username: "carl"}
	_, err = s.controller.Join(s.ctx, arena.ID, late)
	s.ErrorIs(err, model.ErrArenaFull)
}

func (s *ControllerSuite) TestJoinLastSlotHasExactlyOneWinner() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	// Two joiners race for the one remaining slot. Whoever saves second
	// loses the version check, re-reads a full arena and is turned away.
	racers := []model.Identity{
		s.bob,
		{Provider: "local", UserID: "player-c", Username: "carl"},
	}
	errs := make([]error, len(racers))

	var wg sync.WaitGroup
	for i, id := range racers {
		wg.Add(1)
		go func(i int, id model.Identity) {
			defer wg.Done()
			_, errs[i] = s.controller.Join(s.ctx, arena.ID, id)
		}(i, id)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			s.ErrorIs(err, model.ErrArenaFull)
		}
	}
	s.Equal(1, winners)

	stored, err := s.controller.GetArena(s.ctx, arena.ID)
	s.Require().NoError(err)
	s.Len(stored.ActiveMembers(), 2)
}

func (s *ControllerSuite) TestJoinEndedArenaFails() {
	cfg := s.defaultConfig()
	cfg.DurationMinutes = 30
	arena := s.createArena(cfg)
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	_, err = s.controller.Join(s.ctx, arena.ID, s.bob)
	s.ErrorIs(err, model.ErrArenaEnded)
}

func (s *ControllerSuite) TestJoinUnknownArenaFails() {
	_, err := s.controller.Join(s.ctx, "NOPE42", s.alice)
	s.ErrorIs(err, model.ErrArenaNotFound)
}

// Kick tests

func (s *ControllerSuite) TestKickMarksMemberKicked() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	updated, err := s.controller.Kick(s.ctx, arena.ID, s.creator, s.alice)
	s.Require().NoError(err)
	s.Require().Len(updated.Members, 1)
	s.True(updated.Members[0].Kicked)
	s.Nil(updated.FindMember(s.alice))
}

func (s *ControllerSuite) TestKickRequiresCreator() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	_, err = s.controller.Kick(s.ctx, arena.ID, s.alice, s.alice)
	s.ErrorIs(err, model.ErrNotArenaCreator)
}

func (s *ControllerSuite) TestKickNonMemberFails() {
	arena := s.createArena(s.defaultConfig())

	_, err := s.controller.Kick(s.ctx, arena.ID, s.creator, s.alice)
	s.ErrorIs(err, model.ErrNotArenaMember)
}

func (s *ControllerSuite) TestKickedMemberCannotPlay() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)
	_, err = s.controller.Kick(s.ctx, arena.ID, s.creator, s.alice)
	s.Require().NoError(err)

	_, err = s.controller.PlayWord(s.ctx, arena.ID, s.alice, 0)
	s.ErrorIs(err, model.ErrNotArenaMember)
}

// PlayWord tests

func (s *ControllerSuite) TestPlayWordCreatesGameForMember() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	game, err := s.controller.PlayWord(s.ctx, arena.ID, s.alice, 1)
	s.Require().NoError(err)
	s.Require().NotNil(game.Arena)
	s.Equal(arena.ID, game.Arena.ArenaID)
	s.Equal(1, game.Arena.WordIndex)
	s.Equal(s.assigner.WordForArena(arena.ID, 1), game.Secret)
}

func (s *ControllerSuite) TestPlayWordRequiresMembership() {
	arena := s.createArena(s.defaultConfig())

	_, err := s.controller.PlayWord(s.ctx, arena.ID, s.alice, 0)
	s.ErrorIs(err, model.ErrNotArenaMember)
}

func (s *ControllerSuite) TestPlayWordBeforeScheduledStartFails() {
	cfg := s.defaultConfig()
	start := s.clock.Now().Add(time.Hour)
	cfg.ScheduledStart = &start
	arena := s.createArena(cfg)
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	_, err = s.controller.PlayWord(s.ctx, arena.ID, s.alice, 0)
	s.ErrorIs(err, model.ErrArenaNotStarted)

	s.clock.Advance(2 * time.Hour)
	_, err = s.controller.PlayWord(s.ctx, arena.ID, s.alice, 0)
	s.NoError(err)
}

func (s *ControllerSuite) TestPlayWordAfterEndFails() {
	cfg := s.defaultConfig()
	cfg.DurationMinutes = 30
	arena := s.createArena(cfg)
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	_, err = s.controller.PlayWord(s.ctx, arena.ID, s.alice, 0)
	s.ErrorIs(err, model.ErrArenaEnded)
}

func (s *ControllerSuite) TestPlayWordRejectsBadIndex() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	_, err = s.controller.PlayWord(s.ctx, arena.ID, s.alice, 3)
	s.ErrorIs(err, model.ErrInvalidWordIndex)
}

// Guess tests

func (s *ControllerSuite) TestGuessAppliesValidGuess() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	game, result, err := s.controller.Guess(s.ctx, arena.ID, s.alice, 0, "about")
	s.Require().NoError(err)
	s.Equal(model.GuessValid, result)
	s.Equal(1, game.GuessCount())
}

func (s *ControllerSuite) TestGuessReportsValidationFailure() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	game, result, err := s.controller.Guess(s.ctx, arena.ID, s.alice, 0, "zzzzz")
	s.Require().NoError(err)
	s.Equal(model.GuessNotAWord, result)
	s.Equal(0, game.GuessCount())
}

func (s *ControllerSuite) TestGuessOnFinishedGameFails() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)

	secret := s.assigner.WordForArena(arena.ID, 0)
	_, result, err := s.controller.Guess(s.ctx, arena.ID, s.alice, 0, secret)
	s.Require().NoError(err)
	s.Require().Equal(model.GuessValid, result)

	_, _, err = s.controller.Guess(s.ctx, arena.ID, s.alice, 0, "about")
	s.ErrorIs(err, model.ErrGameOver)
}

// Standings integration

func (s *ControllerSuite) TestStandingsReflectPlayedGames() {
	arena := s.createArena(s.defaultConfig())
	_, err := s.controller.Join(s.ctx, arena.ID, s.alice)
	s.Require().NoError(err)
	_, err = s.controller.Join(s.ctx, arena.ID, s.bob)
	s.Require().NoError(err)

	secret := s.assigner.WordForArena(arena.ID, 0)
	_, result, err := s.controller.Guess(s.ctx, arena.ID, s.alice, 0, secret)
	s.Require().NoError(err)
	s.Require().Equal(model.GuessValid, result)

	got, standings, err := s.controller.Standings(s.ctx, arena.ID)
	s.Require().NoError(err)
	s.Equal(arena.ID, got.ID)
	s.Require().Len(standings, 2)
	s.Equal(model.StandingRanked, standings[0].Kind)
	s.Equal(s.alice.UserID, standings[0].Identity.UserID)
	s.Equal(1, standings[0].GamesWon)
	s.Equal(model.StandingMemberPending, standings[1].Kind)
	s.Equal(s.bob.UserID, standings[1].Identity.UserID)
}
