// internal/player/script.go
//
// Fixed-list guess source for --script and tests.

package player

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-game/internal/game"
)

// Script replays a fixed list of guesses, skipping any whose length does
// not fit the board.
type Script struct {
	guesses []string
}

func NewScript(guesses ...string) *Script {
	return &Script{guesses: guesses}
}

// GetPlay implements game.GuessSource.
func (s *Script) GetPlay(board game.BoardView) (string, error) {
	for len(s.guesses) > 0 {
		g := strings.ToLower(strings.TrimSpace(s.guesses[0]))
		s.guesses = s.guesses[1:]
		if utf8.RuneCountInString(g) == board.Width() {
			return g, nil
		}
		log.Warn().Str("guess", g).Int("width", board.Width()).Msg("skipping scripted guess of wrong length")
	}
	return "", ErrExhausted
}

// Remaining is the number of guesses not yet replayed.
func (s *Script) Remaining() int { return len(s.guesses) }
