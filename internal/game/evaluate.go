// internal/game/evaluate.go
//
// Per-letter feedback for a guess against the target word.

package game

import (
	"fmt"
	"strings"
)

// Evaluate scores guess against target, one Slot per guess position.
//
// Each position is judged on its own:
//   - letter absent from the whole target → NonMatch
//   - letter equal to the target letter at that position → Match
//   - otherwise → PartialMatch
//
// Presence is a containment check, not a letter count: a guessed letter that
// occurs once in the target may be PartialMatch at several positions.
//
// guess must have the same number of runes as target. Callers (the guess
// source) guarantee this, so a mismatch panics.
func Evaluate(target, guess string) []Slot {
	t, g := []rune(target), []rune(guess)
	if len(g) != len(t) {
		panic(fmt.Sprintf("game: guess %q has %d letters, target has %d", guess, len(g), len(t)))
	}

	out := make([]Slot, len(g))
	for i, r := range g {
		switch {
		case !strings.ContainsRune(target, r):
			out[i] = Slot{Letter: r, State: NonMatch}
		case t[i] == r:
			out[i] = Slot{Letter: r, State: Match}
		default:
			out[i] = Slot{Letter: r, State: PartialMatch}
		}
	}
	return out
}
