package evaluation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wordarena/wordarena-go/internal/model"
)

type EvaluationSuite struct {
	suite.Suite
}

func TestEvaluationSuite(t *testing.T) {
	suite.Run(t, new(EvaluationSuite))
}

func (s *EvaluationSuite) statuses(eval model.EvaluatedGuess) []model.LetterStatus {
	out := make([]model.LetterStatus, model.WordLength)
	for i, m := range eval {
		out[i] = m.Status
	}
	return out
}

func (s *EvaluationSuite) mustEvaluate(secret, guess string) model.EvaluatedGuess {
	eval, err := Evaluate(secret, guess)
	s.Require().NoError(err)
	return eval
}

// Evaluate tests

func (s *EvaluationSuite) TestEvaluateAllCorrect() {
	for _, word := range []string{"crane", "llama", "abbey", "queue"} {
		eval := s.mustEvaluate(word, word)
		s.True(eval.AllCorrect(), "evaluating %q against itself", word)
	}
}

func (s *EvaluationSuite) TestEvaluateNoLettersShared() {
	eval := s.mustEvaluate("crane", "built")
	s.Equal([]model.LetterStatus{
		model.LetterIncorrect,
		model.LetterIncorrect,
		model.LetterIncorrect,
		model.LetterIncorrect,
		model.LetterIncorrect,
	}, s.statuses(eval))
}

func (s *EvaluationSuite) TestEvaluateTraceAgainstCrane() {
	eval := s.mustEvaluate("crane", "trace")
	s.Equal([]model.LetterStatus{
		model.LetterIncorrect,     // T
		model.LetterCorrect,       // R
		model.LetterCorrect,       // A
		model.LetterWrongPosition, // C
		model.LetterCorrect,       // E
	}, s.statuses(eval))
}

func (s *EvaluationSuite) TestEvaluateDuplicateLettersLlamaAgainstAlarm() {
	// ALARM has two A's and one L; surplus guess letters must be incorrect
	eval := s.mustEvaluate("alarm", "llama")
	s.Equal([]model.LetterStatus{
		model.LetterIncorrect,     // L (second L in guess, only one in secret)
		model.LetterCorrect,       // L
		model.LetterCorrect,       // A
		model.LetterWrongPosition, // M
		model.LetterWrongPosition, // A
	}, s.statuses(eval))
}

func (s *EvaluationSuite) TestEvaluateExactMatchConsumesBeforeWrongPosition() {
	// The E in position 5 is an exact match; the E in position 1 must not
	// steal it
	eval := s.mustEvaluate("abide", "erase")
	s.Equal(model.LetterIncorrect, eval[0].Status)
	s.Equal(model.LetterCorrect, eval[4].Status)
}

func (s *EvaluationSuite) TestEvaluateNormalizesCase() {
	eval := s.mustEvaluate("CRANE", "Crane")
	s.True(eval.AllCorrect())
	s.Equal('c', eval[0].Letter)
}

func (s *EvaluationSuite) TestEvaluateMarksNeverExceedMultiplicity() {
	secrets := []string{"alarm", "abbey", "crane", "eerie", "mamma"}
	guesses := []string{"llama", "alarm", "eerie", "mamma", "aabba", "zzzzz", "trace"}

	for _, secret := range secrets {
		var multiplicity [26]int
		for _, r := range secret {
			multiplicity[r-'a']++
		}

		for _, guess := range guesses {
			eval := s.mustEvaluate(secret, guess)

			var marked [26]int
			for _, m := range eval {
				if m.Status != model.LetterIncorrect {
					marked[m.Letter-'a']++
				}
			}
			for j := 0; j < 26; j++ {
				s.LessOrEqual(marked[j], multiplicity[j],
					"secret %q guess %q letter %c", secret, guess, 'a'+j)
			}
		}
	}
}

func (s *EvaluationSuite) TestEvaluateRejectsInvalidInput() {
	_, err := Evaluate("crane", "cranes")
	s.ErrorIs(err, ErrInvalidInput)

	_, err = Evaluate("cr4ne", "crane")
	s.ErrorIs(err, ErrInvalidInput)

	_, err = Evaluate("crane", "")
	s.ErrorIs(err, ErrInvalidInput)
}

// Hard-mode tests

func (s *EvaluationSuite) TestHardModeReflexive() {
	for _, pair := range [][2]string{
		{"crane", "trace"},
		{"alarm", "llama"},
		{"abide", "zzzzz"},
	} {
		eval := s.mustEvaluate(pair[0], pair[1])
		s.True(IsHardModeConsistent(eval, eval),
			"a guess must be consistent with itself (%q vs %q)", pair[1], pair[0])
	}
}

func (s *EvaluationSuite) TestHardModeCorrectPositionMustBeKept() {
	prev := s.mustEvaluate("crane", "trace") // R, A, E correct
	next := s.mustEvaluate("crane", "irons") // R kept, A and E dropped
	s.False(IsHardModeConsistent(prev, next))
}

func (s *EvaluationSuite) TestHardModeWrongPositionLetterMustReappear() {
	prev := s.mustEvaluate("crane", "cough") // C correct, rest incorrect
	next := s.mustEvaluate("crane", "caves") // keeps C, reuses A and E
	s.True(IsHardModeConsistent(prev, next))

	dropped := s.mustEvaluate("crane", "comic") // C kept but no new hints used
	s.True(IsHardModeConsistent(prev, dropped))
}

func (s *EvaluationSuite) TestHardModeRevealedCountMustNotDecrease() {
	// Secret EERIE: guessing EAGER reveals two E's; a follow-up with only
	// one E forgets information
	prev := s.mustEvaluate("eerie", "eager")
	next := s.mustEvaluate("eerie", "media")
	s.False(IsHardModeConsistent(prev, next))
}

func (s *EvaluationSuite) TestHardModeFullyConsistentProgression() {
	prev := s.mustEvaluate("crane", "trace")
	next := s.mustEvaluate("crane", "crane")
	s.True(IsHardModeConsistent(prev, next))
}

func (s *EvaluationSuite) TestHardModeHistory() {
	trace := s.mustEvaluate("crane", "trace")
	crane := s.mustEvaluate("crane", "crane")
	built := s.mustEvaluate("crane", "built")

	s.True(IsHardModeHistory(nil))
	s.True(IsHardModeHistory([]model.EvaluatedGuess{trace}))
	s.True(IsHardModeHistory([]model.EvaluatedGuess{trace, crane}))
	// A break anywhere latches the whole history false
	s.False(IsHardModeHistory([]model.EvaluatedGuess{trace, built, crane}))
}
