// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - SlotState / Slot: per-letter result of a guess (hit/present/miss).
//   - Row: one board line, either Empty (width only) or Evaluated.
//   - Board / BoardView: ordered guess history owned by a Session.
//   - Summary: final outcome of a finished session.
//   - Snapshot: storable form of a session (target + ordered guesses).

package game

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// SlotState represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is in the target at this exact position.
//   - "present": letter occurs somewhere in the target, but not here.
//   - "miss":    letter does not occur in the target at all.
type SlotState string

const (
	Match        SlotState = "hit"
	PartialMatch SlotState = "present"
	NonMatch     SlotState = "miss"
)

// Slot tags one guessed letter with its relationship to the target.
type Slot struct {
	Letter rune
	State  SlotState
}

func (s Slot) String() string {
	return fmt.Sprintf("%s(%c)", s.State, s.Letter)
}

// MarshalJSON encodes the letter as a one-character string.
func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter string    `json:"letter"`
		Mark   SlotState `json:"mark"`
	}{string(s.Letter), s.State})
}

// Row is a single board line. A Row with no slots is Empty and only
// carries its width for display.
type Row struct {
	width int
	slots []Slot
}

func emptyRow(width int) Row { return Row{width: width} }

// Empty reports whether the row is still a placeholder.
func (r Row) Empty() bool { return r.slots == nil }

// Width is the number of letters the row holds once evaluated.
func (r Row) Width() int { return r.width }

// Slots returns a copy of the evaluated slots (nil for an Empty row).
func (r Row) Slots() []Slot { return slices.Clone(r.slots) }

// Word reconstructs the guess that produced the row.
func (r Row) Word() string {
	var b strings.Builder
	for _, s := range r.slots {
		b.WriteRune(s.Letter)
	}
	return b.String()
}

// Solved reports whether every slot is a Match.
func (r Row) Solved() bool {
	return !r.Empty() && lo.EveryBy(r.slots, func(s Slot) bool { return s.State == Match })
}

func (r Row) MarshalJSON() ([]byte, error) {
	if r.Empty() {
		return json.Marshal(struct {
			Empty bool `json:"empty"`
			Width int  `json:"width"`
		}{true, r.width})
	}
	return json.Marshal(struct {
		Word  string `json:"word"`
		Slots []Slot `json:"slots"`
	}{r.Word(), r.slots})
}

// BoardView is read-only access to a board. Guess sources and presenters
// receive one each turn.
type BoardView interface {
	Width() int
	Len() int
	Filled() int
	Row(i int) Row
	Rows() []Row
}

// Board holds one row per attempt. Rows are filled in attempt order and
// never rewritten once filled.
type Board struct {
	width  int
	rows   []Row
	filled int
}

func newBoard(width, length int) *Board {
	return &Board{
		width: width,
		rows:  lo.Times(length, func(_ int) Row { return emptyRow(width) }),
	}
}

// fill writes slots into the next unfilled row. Any other index is a bug
// in the session state machine.
func (b *Board) fill(i int, slots []Slot) {
	if i != b.filled || i >= len(b.rows) {
		panic(fmt.Sprintf("game: board row %d written out of order (filled=%d, len=%d)", i, b.filled, len(b.rows)))
	}
	b.rows[i] = Row{width: b.width, slots: slots}
	b.filled++
}

func (b *Board) Width() int    { return b.width }
func (b *Board) Len() int      { return len(b.rows) }
func (b *Board) Filled() int   { return b.filled }
func (b *Board) Row(i int) Row { return b.rows[i] }
func (b *Board) Rows() []Row   { return slices.Clone(b.rows) }

func (b *Board) MarshalJSON() ([]byte, error) { return json.Marshal(b.rows) }

// Summary is the immutable outcome of a finished session.
type Summary struct {
	Won      bool `json:"won"`
	Attempts int  `json:"attempts"` // guesses actually made
}

// Snapshot is the storable form of a session. The board is not stored:
// Restore rebuilds it by replaying Guesses.
type Snapshot struct {
	ID       string
	Target   string
	Attempts int
	Guesses  []string
}
