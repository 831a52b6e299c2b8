// internal/player/bot.go
//
// Automatic guess source that narrows a candidate list using the board's
// feedback rows.

package player

import (
	"slices"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-game/internal/game"
)

// Bot guesses the first candidate that is consistent with every evaluated
// row on the board. A candidate c is consistent with a row when evaluating
// the row's guess against c reproduces the row's feedback exactly.
type Bot struct {
	candidates []string
}

// NewBot returns a Bot choosing from candidates, in order.
func NewBot(candidates []string) *Bot {
	return &Bot{candidates: slices.Clone(candidates)}
}

// GetPlay implements game.GuessSource.
func (b *Bot) GetPlay(board game.BoardView) (string, error) {
	var played []game.Row
	for i := 0; i < board.Filled(); i++ {
		played = append(played, board.Row(i))
	}
	guessed := lo.Map(played, func(r game.Row, _ int) string { return r.Word() })

	for _, c := range b.candidates {
		if utf8.RuneCountInString(c) != board.Width() || slices.Contains(guessed, c) {
			continue
		}
		if lo.EveryBy(played, func(r game.Row) bool { return consistent(c, r) }) {
			return c, nil
		}
	}
	return "", ErrExhausted
}

func consistent(candidate string, row game.Row) bool {
	return slices.Equal(game.Evaluate(candidate, row.Word()), row.Slots())
}
