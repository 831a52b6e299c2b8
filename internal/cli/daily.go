// internal/cli/daily.go
//
// `wordle daily`: prints the word-of-the-day index for a date.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-game/internal/config"
	"github.com/robalobadob/wordle/apps/go-game/internal/daily"
	"github.com/robalobadob/wordle/apps/go-game/internal/words"
)

func dailyCmd(cfg *config.Config) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show which list entry is today's word (without revealing it)",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				var err error
				if day, err = daily.ParseDateKey(date); err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}
			list, err := words.Load(cfg.WordsFile)
			if err != nil {
				return err
			}
			_, idx, err := list.Daily(day, cfg.DailySalt, cfg.WordLength)
			if err != nil {
				return fmt.Errorf("daily word: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: word #%d of %d (%d letters)\n",
				daily.DateKey(day), idx+1, len(list.WithLength(cfg.WordLength)), cfg.WordLength)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today UTC)")
	return cmd
}
