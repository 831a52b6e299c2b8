// internal/cli/serve.go
//
// `wordle serve`: runs the HTTP host until SIGINT/SIGTERM.

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-game/internal/config"
	"github.com/robalobadob/wordle/apps/go-game/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-game/internal/store"
	"github.com/robalobadob/wordle/apps/go-game/internal/words"
)

func serveCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := words.Load(cfg.WordsFile)
			if err != nil {
				return err
			}

			st := store.NewMemoryStore()
			if cfg.StoreDSN != "" {
				db, err := store.OpenSQLite(cfg.StoreDSN)
				if err != nil {
					return err
				}
				defer db.Close()
				st = db
				log.Info().Str("dsn", cfg.StoreDSN).Msg("using sqlite game store")
			}

			srv, err := httpserver.New(httpserver.Options{
				Store:        st,
				Words:        list,
				Secret:       cfg.JWTSecret,
				TokenTTL:     cfg.TokenTTL,
				WordLength:   cfg.WordLength,
				Attempts:     cfg.Attempts,
				DailySalt:    cfg.DailySalt,
				ClientOrigin: cfg.ClientOrigin,
				RateRPS:      cfg.RateLimitRPS,
				RateBurst:    cfg.RateLimitBurst,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.Info().Str("port", cfg.Port).Msg("starting game server")
			return srv.ListenAndServe(ctx, ":"+cfg.Port)
		},
	}
	cmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "listen port")
	return cmd
}
