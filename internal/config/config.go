// internal/config/config.go
//
// Runtime configuration read from the environment (after `.env` loading in main).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds every tunable of the CLI and the HTTP host.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"` // console | json

	WordsFile  string `env:"WORDS_FILE"`
	WordLength int    `env:"WORD_LENGTH" envDefault:"5"`
	Attempts   int    `env:"ATTEMPTS" envDefault:"6"`
	DailySalt  string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	Port           string        `env:"PORT" envDefault:"5175"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	StoreDSN       string        `env:"STORE_DSN"` // empty = in-memory
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WordLength <= 0 {
		return Config{}, fmt.Errorf("WORD_LENGTH must be positive, got %d", cfg.WordLength)
	}
	if cfg.Attempts <= 0 {
		return Config{}, fmt.Errorf("ATTEMPTS must be positive, got %d", cfg.Attempts)
	}
	return cfg, nil
}

// SetupLogging configures the global zerolog logger from LogLevel/LogFormat.
func (c Config) SetupLogging() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: time.Kitchen,
	})
}
