// internal/player/human.go
//
// Interactive guess source: prompts on a writer, reads lines from a reader,
// and keeps asking until a guess of the right length arrives.
package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-game/internal/game"
)

var (
	ErrClosed    = errors.New("player: input closed")
	ErrExhausted = errors.New("player: no guesses left")
)

// maxReadErrors bounds consecutive failed reads before giving up.
const maxReadErrors = 5

// Human reads guesses typed by a person.
type Human struct {
	in  *bufio.Reader
	out io.Writer
	// Warn styles retry messages; identity when nil.
	Warn func(string) string
	// Error styles read-failure messages; identity when nil.
	Error func(string) string
}

// NewHuman returns a Human reading from in and prompting on out.
func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewReader(in), out: out}
}

// validateInput checks the guess length in letters against the board width.
func validateInput(input string, width int) bool {
	return utf8.RuneCountInString(input) == width
}

// GetPlay implements game.GuessSource.
func (h *Human) GetPlay(board game.BoardView) (string, error) {
	failures := 0
	for {
		fmt.Fprintln(h.out, "Insert your guess: ")
		line, err := h.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return "", ErrClosed
			}
			failures++
			log.Warn().Err(err).Int("failures", failures).Msg("read guess")
			if failures >= maxReadErrors {
				return "", fmt.Errorf("%w: %v", ErrClosed, err)
			}
			fmt.Fprintln(h.out, h.fail("There was an error while reading the input, try again"))
			continue
		}
		guess := strings.TrimSpace(line)
		if !validateInput(guess, board.Width()) {
			fmt.Fprintln(h.out, h.warn(fmt.Sprintf("Invalid input, try again (%d letters)", board.Width())))
			continue
		}
		return strings.ToLower(guess), nil
	}
}

func (h *Human) warn(s string) string { return style(h.Warn, s) }
func (h *Human) fail(s string) string { return style(h.Error, s) }

func style(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}
