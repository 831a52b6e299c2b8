// internal/words/words.go
//
// Target word supply for hosts (CLI, HTTP).
//
// Responsibilities:
//   - Load a list from a file (one word per line) or fall back to the embedded default.
//   - Normalise entries (trim, lower-case, letters only, de-duplicated).
//   - Pick targets of a requested length: Random, Daily.
//   - Expose same-length candidates for the bot guess source.
//
// Guesses are never checked against this list; only length is validated.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-game/assets"
	"github.com/robalobadob/wordle/apps/go-game/internal/daily"
)

// DefaultWord is the target of last resort when nothing else is available.
const DefaultWord = "test"

var ErrNoWords = errors.New("words: no words of requested length")

// randReader is the entropy source for Random.
var randReader io.Reader = rand.Reader

// List is an immutable set of target words grouped by length.
type List struct {
	words []string
	byLen map[int][]string
}

// New normalises words into a List.
func New(words []string) *List {
	l := &List{byLen: make(map[int][]string)}
	l.words = lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.TrimSpace(strings.ToLower(w))
		return w, w != "" && isLetters(w)
	}))
	for _, w := range l.words {
		n := utf8.RuneCountInString(w)
		l.byLen[n] = append(l.byLen[n], w)
	}
	return l
}

// Load reads the list at path, or the embedded default when path is empty.
func Load(path string) (*List, error) {
	if path == "" {
		ws, err := assets.AnswersList()
		if err != nil {
			return nil, fmt.Errorf("read embedded words: %w", err)
		}
		return New(ws), nil
	}
	ws, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	l := New(ws)
	log.Info().Str("path", path).Int("words", l.Len()).Msg("word list loaded")
	return l, nil
}

// readWordFile loads one word per line, skipping blanks and '#' comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// isLetters reports whether s consists only of letters.
func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Len is the number of distinct words.
func (l *List) Len() int { return len(l.words) }

// WithLength returns the words with exactly n letters, in list order.
func (l *List) WithLength(n int) []string {
	return slices.Clone(l.byLen[n])
}

// Random returns a cryptographically random word of n letters.
func (l *List) Random(n int) (string, error) {
	ws := l.byLen[n]
	if len(ws) == 0 {
		return "", ErrNoWords
	}
	i, err := rand.Int(randReader, big.NewInt(int64(len(ws))))
	if err != nil {
		return "", fmt.Errorf("pick word: %w", err)
	}
	return ws[i.Int64()], nil
}

// Daily returns the word of the day for date among the words of n letters,
// along with its index in that sub-list.
func (l *List) Daily(date time.Time, salt string, n int) (string, int, error) {
	ws := l.byLen[n]
	if len(ws) == 0 {
		return "", 0, ErrNoWords
	}
	idx := daily.WordIndex(date, salt, len(ws))
	return ws[idx], idx, nil
}
