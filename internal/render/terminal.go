// internal/render/terminal.go
//
// Console presenter for the game board.
//
//	|slate|   borders in blue
//	|#####|   empty rows as '#' x width
//
// Match letters are green, PartialMatch yellow, NonMatch white. Without
// colour an extra marker line goes under each evaluated row:
// '=' match, '?' partial, '.' none.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"

	"github.com/robalobadob/wordle/apps/go-game/internal/game"
)

type styleFunc func(a ...any) string

// Terminal writes the board as text, optionally coloured.
type Terminal struct {
	w       io.Writer
	color   bool
	border  styleFunc
	hit     styleFunc
	present styleFunc
	miss    styleFunc
	warn    styleFunc
	fail    styleFunc
}

func NewTerminal(w io.Writer, enabled bool) *Terminal {
	t := &Terminal{w: w, color: enabled}
	t.border = t.style(color.FgBlue)
	t.hit = t.style(color.FgGreen)
	t.present = t.style(color.FgYellow)
	t.miss = t.style(color.FgWhite)
	t.warn = t.style(color.FgYellow)
	t.fail = t.style(color.FgRed)
	return t
}

// Stdout returns a Terminal on standard output. color.NoColor already covers
// a non-tty stdout, TERM=dumb and NO_COLOR.
func Stdout(noColor bool) *Terminal {
	return NewTerminal(colorable.NewColorableStdout(), !noColor && !color.NoColor)
}

// style returns a colour func that follows t.color, not color.NoColor.
func (t *Terminal) style(attr color.Attribute) styleFunc {
	c := color.New(attr)
	if t.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Writer is the underlying output.
func (t *Terminal) Writer() io.Writer { return t.w }

// Render implements game.Presenter.
func (t *Terminal) Render(board game.BoardView) {
	var b strings.Builder
	for _, row := range board.Rows() {
		b.WriteString(t.border("|"))
		if row.Empty() {
			b.WriteString(t.border(strings.Repeat("#", row.Width())))
		} else {
			for _, s := range row.Slots() {
				b.WriteString(t.slotStyle(s.State)(string(s.Letter)))
			}
		}
		b.WriteString(t.border("|"))
		b.WriteByte('\n')
		if !t.color && !row.Empty() {
			b.WriteByte(' ')
			for _, s := range row.Slots() {
				b.WriteByte(marker(s.State))
			}
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(t.w, b.String())
}

// Warn styles a retry message.
func (t *Terminal) Warn(s string) string { return t.warn(s) }

// Error styles a failure message.
func (t *Terminal) Error(s string) string { return t.fail(s) }

// Printf writes a plain line to the output.
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.w, format, args...)
}

func (t *Terminal) slotStyle(st game.SlotState) styleFunc {
	switch st {
	case game.Match:
		return t.hit
	case game.PartialMatch:
		return t.present
	default:
		return t.miss
	}
}

func marker(st game.SlotState) byte {
	switch st {
	case game.Match:
		return '='
	case game.PartialMatch:
		return '?'
	default:
		return '.'
	}
}
