// Package evaluation implements per-letter guess scoring and the hard-mode
// consistency check. Everything here is pure computation over the raw guess
// log; callers re-derive rather than cache (guess counts are at most six).
package evaluation

import (
	"errors"
	"strings"

	"github.com/wordarena/wordarena-go/internal/model"
)

// ErrInvalidInput is returned when a secret or guess is not a 5-letter
// lowercase alphabetic word. Callers are expected to validate first.
var ErrInvalidInput = errors.New("secret and guess must be 5 lowercase letters")

// Evaluate scores a guess against the secret using the two-pass algorithm.
//
// Pass 1 marks exact matches and counts the remaining secret letters.
// Pass 2 marks wrong-position letters while remaining count lasts; everything
// else is incorrect. This bounds the non-incorrect marks for any letter by
// that letter's multiplicity in the secret.
func Evaluate(secret, guess string) (model.EvaluatedGuess, error) {
	secret = strings.ToLower(secret)
	guess = strings.ToLower(guess)

	var eval model.EvaluatedGuess
	if !isWord(secret) || !isWord(guess) {
		return eval, ErrInvalidInput
	}

	secretRunes := []rune(secret)
	guessRunes := []rune(guess)

	// Letter frequency for the non-exact positions (a-z)
	var remaining [26]int

	for i := 0; i < model.WordLength; i++ {
		eval[i].Letter = guessRunes[i]
		if guessRunes[i] == secretRunes[i] {
			eval[i].Status = model.LetterCorrect
		} else {
			remaining[letterIndex(secretRunes[i])]++
		}
	}

	for i := 0; i < model.WordLength; i++ {
		if eval[i].Status == model.LetterCorrect {
			continue
		}
		j := letterIndex(guessRunes[i])
		if remaining[j] > 0 {
			eval[i].Status = model.LetterWrongPosition
			remaining[j]--
		} else {
			eval[i].Status = model.LetterIncorrect
		}
	}

	return eval, nil
}

// IsHardModeConsistent reports whether the candidate guess uses all
// information revealed by the previous guess (both evaluated against the
// same secret):
//
//   - correct positions keep the identical letter,
//   - wrong-position letters appear somewhere in the candidate,
//   - per letter, the candidate's correct+wrong-position count is at least
//     the previous guess's (revealed information is never forgotten).
func IsHardModeConsistent(prev, next model.EvaluatedGuess) bool {
	var prevHints, nextHints [26]int

	for i := 0; i < model.WordLength; i++ {
		if prev[i].Status == model.LetterCorrect && next[i].Letter != prev[i].Letter {
			return false
		}
		if prev[i].Status != model.LetterIncorrect {
			prevHints[letterIndex(prev[i].Letter)]++
		}
		if next[i].Status != model.LetterIncorrect {
			nextHints[letterIndex(next[i].Letter)]++
		}
	}

	for i := 0; i < model.WordLength; i++ {
		if prev[i].Status == model.LetterWrongPosition && !containsLetter(next, prev[i].Letter) {
			return false
		}
	}

	for j := 0; j < 26; j++ {
		if nextHints[j] < prevHints[j] {
			return false
		}
	}
	return true
}

// IsHardModeHistory reports whether every consecutive pair of evaluations
// satisfies the hard-mode check. The game's hard-mode flag is this property
// of the whole history: it latches false at the first failing pair.
func IsHardModeHistory(evals []model.EvaluatedGuess) bool {
	for i := 1; i < len(evals); i++ {
		if !IsHardModeConsistent(evals[i-1], evals[i]) {
			return false
		}
	}
	return true
}

func containsLetter(eval model.EvaluatedGuess, letter rune) bool {
	for _, m := range eval {
		if m.Letter == letter {
			return true
		}
	}
	return false
}

func letterIndex(r rune) int { return int(r - 'a') }

func isWord(s string) bool {
	if len(s) != model.WordLength {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
