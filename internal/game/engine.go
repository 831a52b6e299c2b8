// internal/game/engine.go
//
// Turn state machine for a single game session.
// Responsibilities:
//   - Create sessions with a fixed target word and attempt budget.
//   - Apply guesses in order, filling the next board row.
//   - Track state transitions: awaiting guess → evaluated → awaiting guess | finished.
//   - Drive the turn loop against a GuessSource and a Presenter.
//
// Notes:
//   - A Session is not safe for concurrent use; hosts serialise access.
//   - Guess validation (length, unreadable input) belongs to the GuessSource.
package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidTarget   = errors.New("target word must not be empty")
	ErrInvalidAttempts = errors.New("attempts must be positive")
	ErrFinished        = errors.New("game finished")
)

// State of the turn state machine.
type State int

const (
	AwaitingGuess State = iota
	Evaluated
	Finished
)

func (s State) String() string {
	switch s {
	case AwaitingGuess:
		return "awaiting_guess"
	case Evaluated:
		return "evaluated"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// GuessSource supplies one structurally valid guess per turn.
//
// GetPlay must return a guess with exactly board.Width() letters and handle
// malformed input itself (re-prompt, retry). An error means the source is
// closed for good and ends the turn loop.
type GuessSource interface {
	GetPlay(board BoardView) (string, error)
}

// Presenter renders the board. It is called once after the board is built
// and again after every row update.
type Presenter interface {
	Render(board BoardView)
}

// Session owns the target word, the attempt budget and the board.
type Session struct {
	target    string
	width     int
	total     int
	remaining int
	board     *Board
	state     State
}

// NewSession creates a session awaiting its first guess, with an all-Empty board.
func NewSession(target string, attempts int) (*Session, error) {
	if target == "" {
		return nil, ErrInvalidTarget
	}
	if attempts <= 0 {
		return nil, ErrInvalidAttempts
	}
	target = strings.ToLower(target)
	width := utf8.RuneCountInString(target)
	return &Session{
		target:    target,
		width:     width,
		total:     attempts,
		remaining: attempts,
		board:     newBoard(width, attempts),
		state:     AwaitingGuess,
	}, nil
}

// Restore rebuilds a session from a snapshot by replaying its guesses.
func Restore(snap Snapshot) (*Session, error) {
	s, err := NewSession(snap.Target, snap.Attempts)
	if err != nil {
		return nil, err
	}
	for i, g := range snap.Guesses {
		if utf8.RuneCountInString(g) != s.width {
			return nil, fmt.Errorf("restore guess %d: %q does not fit width %d", i, g, s.width)
		}
		if _, err := s.Play(g); err != nil {
			return nil, fmt.Errorf("restore guess %d: %w", i, err)
		}
	}
	return s, nil
}

// Play applies one guess and returns the evaluated row.
//
// State transitions:
//   - guess equals the target (case-insensitive) → Finished, won; attempts are not consumed.
//   - otherwise one attempt is consumed; at zero remaining → Finished, lost.
func (s *Session) Play(guess string) (Row, error) {
	if s.state == Finished {
		return Row{}, ErrFinished
	}
	guess = strings.ToLower(guess)

	idx := s.total - s.remaining
	s.board.fill(idx, Evaluate(s.target, guess))
	s.state = Evaluated

	if guess == s.target {
		s.state = Finished
	} else {
		s.remaining--
		if s.remaining == 0 {
			s.state = Finished
		} else {
			s.state = AwaitingGuess
		}
	}

	log.Debug().
		Int("row", idx).
		Str("status", s.Status()).
		Int("remaining", s.remaining).
		Msg("guess evaluated")
	return s.board.Row(idx), nil
}

// Run drives the turn loop until the session is finished and reports the
// outcome. It only fails when src is closed before the game ends.
func (s *Session) Run(src GuessSource, out Presenter) (Summary, error) {
	out.Render(s.board)
	for s.state == AwaitingGuess {
		guess, err := src.GetPlay(s.board)
		if err != nil {
			return Summary{}, fmt.Errorf("get play: %w", err)
		}
		if _, err := s.Play(guess); err != nil {
			return Summary{}, err
		}
		out.Render(s.board)
	}
	return s.Summary(), nil
}

// Summary reports the outcome so far. Won is only meaningful once finished.
func (s *Session) Summary() Summary {
	return Summary{
		Won:      s.state == Finished && s.remaining > 0,
		Attempts: s.board.Filled(),
	}
}

// Snapshot captures the session for storage under id.
func (s *Session) Snapshot(id string) Snapshot {
	guesses := make([]string, 0, s.board.Filled())
	for i := 0; i < s.board.Filled(); i++ {
		guesses = append(guesses, s.board.Row(i).Word())
	}
	return Snapshot{ID: id, Target: s.target, Attempts: s.total, Guesses: guesses}
}

// Status reports a coarse string representation of the current state.
func (s *Session) Status() string {
	if s.state == Finished {
		if s.remaining > 0 {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

func (s *Session) Board() BoardView { return s.board }
func (s *Session) State() State     { return s.state }
func (s *Session) Width() int       { return s.width }
func (s *Session) Total() int       { return s.total }
func (s *Session) Remaining() int   { return s.remaining }

// Target reveals the answer once the session is finished.
func (s *Session) Target() (string, bool) {
	if s.state != Finished {
		return "", false
	}
	return s.target, true
}
