// internal/cli/play.go
//
// `wordle play`: one game in the terminal against a human, scripted or bot
// guess source.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-game/internal/config"
	"github.com/robalobadob/wordle/apps/go-game/internal/daily"
	"github.com/robalobadob/wordle/apps/go-game/internal/game"
	"github.com/robalobadob/wordle/apps/go-game/internal/player"
	"github.com/robalobadob/wordle/apps/go-game/internal/render"
	"github.com/robalobadob/wordle/apps/go-game/internal/words"
)

type playFlags struct {
	word     string
	attempts int
	daily    bool
	date     string
	bot      bool
	script   []string
	noColor  bool
}

func playCmd(cfg *config.Config) *cobra.Command {
	f := playFlags{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.bot && len(f.script) > 0 {
				return errors.New("--bot and --script are mutually exclusive")
			}
			if f.attempts <= 0 {
				return fmt.Errorf("--attempts must be positive, got %d", f.attempts)
			}
			list, err := words.Load(cfg.WordsFile)
			if err != nil {
				return err
			}
			target, err := pickTarget(list, cfg, f)
			if err != nil {
				return err
			}
			sess, err := game.NewSession(target, f.attempts)
			if err != nil {
				return err
			}

			term := terminalFor(cmd, f.noColor)
			var src game.GuessSource
			switch {
			case f.bot:
				src = player.NewBot(list.WithLength(sess.Width()))
			case len(f.script) > 0:
				src = player.NewScript(f.script...)
			default:
				h := player.NewHuman(cmd.InOrStdin(), term.Writer())
				h.Warn = term.Warn
				h.Error = term.Error
				src = h
			}

			term.Printf("Guess the %d-letter word in %d attempts.\n\n", sess.Width(), sess.Total())
			sum, err := sess.Run(src, term)
			if err != nil {
				term.Printf("%s\n", term.Error("Game aborted."))
				return err
			}
			answer, _ := sess.Target()
			log.Debug().Bool("won", sum.Won).Int("guesses", sum.Attempts).Msg("game over")
			if sum.Won {
				term.Printf("You won in %d %s!\n", sum.Attempts, plural(sum.Attempts, "guess", "guesses"))
			} else {
				term.Printf("You lost! The word was %q.\n", answer)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.word, "word", "w", "", "fixed target word")
	cmd.Flags().IntVarP(&f.attempts, "attempts", "n", cfg.Attempts, "number of guesses allowed")
	cmd.Flags().BoolVar(&f.daily, "daily", false, "play the word of the day")
	cmd.Flags().StringVar(&f.date, "date", "", "date for --daily (YYYY-MM-DD, default today UTC)")
	cmd.Flags().BoolVar(&f.bot, "bot", false, "let the bot guess")
	cmd.Flags().StringSliceVar(&f.script, "script", nil, "comma-separated guesses to replay")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable coloured output")
	return cmd
}

// pickTarget resolves the target from --word, --daily or a random list word.
func pickTarget(list *words.List, cfg *config.Config, f playFlags) (string, error) {
	if f.word != "" {
		w := strings.ToLower(strings.TrimSpace(f.word))
		if words.New([]string{w}).Len() != 1 {
			return "", fmt.Errorf("invalid --word %q: letters only", f.word)
		}
		return w, nil
	}
	if f.daily {
		day := time.Now()
		if f.date != "" {
			var err error
			if day, err = daily.ParseDateKey(f.date); err != nil {
				return "", fmt.Errorf("invalid --date: %w", err)
			}
		}
		w, _, err := list.Daily(day, cfg.DailySalt, cfg.WordLength)
		if err != nil {
			return "", fmt.Errorf("daily word: %w", err)
		}
		return w, nil
	}
	w, err := list.Random(cfg.WordLength)
	if errors.Is(err, words.ErrNoWords) {
		log.Warn().Int("length", cfg.WordLength).Str("fallback", words.DefaultWord).Msg("no words of requested length")
		return words.DefaultWord, nil
	}
	return w, err
}

// terminalFor renders to the command's output, with colour only on a real stdout.
func terminalFor(cmd *cobra.Command, noColor bool) *render.Terminal {
	if cmd.OutOrStdout() == os.Stdout {
		return render.Stdout(noColor)
	}
	return render.NewTerminal(cmd.OutOrStdout(), false)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
