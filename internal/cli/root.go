// Package cli wires the wordle commands: play, daily and serve.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-game/internal/config"
)

// Execute runs the root command with os.Args.
func Execute(cfg config.Config) error {
	return newRootCmd(cfg).Execute()
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "wordle",
		Short:        "Guess the hidden word, one letter-feedback row at a time",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file (default: embedded list)")
	root.PersistentFlags().IntVarP(&cfg.WordLength, "length", "l", cfg.WordLength, "word length for random and daily targets")

	root.AddCommand(playCmd(&cfg), dailyCmd(&cfg), serveCmd(&cfg))
	return root
}
