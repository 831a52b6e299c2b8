// internal/httpserver/server.go
//
// HTTP host for game sessions.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily endpoints: GET /daily, POST /daily/new.
//
// Notes:
//   - Each request restores the session from the store, applies at most one
//     guess and saves it back; a per-game mutex serialises these read-modify-writes.
//   - The guess handler is the guess source for HTTP games: it validates the
//     length and the client re-submits on 400.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-game/internal/store"
	"github.com/robalobadob/wordle/apps/go-game/internal/words"
)

const (
	maxWordLength = 15
	maxAttempts   = 20
)

// Options configures a Server.
type Options struct {
	Store        store.Store
	Words        *words.List
	Secret       string
	TokenTTL     time.Duration
	WordLength   int
	Attempts     int
	DailySalt    string
	ClientOrigin string
	RateRPS      int
	RateBurst    int
	Now          func() time.Time
}

// Server bundles router, game store and token issuer.
type Server struct {
	r      *chi.Mux
	opts   Options
	tokens *tokens
	locks  *gameLocks
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Words == nil {
		opts.Words = words.New(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	tk, err := newTokens(opts.Secret, opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), opts: opts, tokens: tk, locks: newGameLocks()}
	lim := newLimiter(opts.RateRPS, opts.RateBurst)

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFor(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}","GET /daily","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.With(lim.middleware).Post("/game/new", s.handleNewGame)
	s.r.With(lim.middleware).Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}", s.handleGetGame)

	s.r.Get("/daily", s.handleDailyInfo)
	s.r.With(lim.middleware).Post("/daily/new", s.handleDailyNew)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code} keeping the JSON content type.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	writeJSON(w, status, map[string]string{"error": code})
}
