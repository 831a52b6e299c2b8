// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new   → start a game, returns its ID and bearer token
//   - POST /game/guess → apply one guess (token required)
//   - GET  /game/{id}  → board and state (token required)

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-game/internal/game"
	"github.com/robalobadob/wordle/apps/go-game/internal/store"
	"github.com/robalobadob/wordle/apps/go-game/internal/words"
)

// newGameReq/Res payloads for POST /game/new and POST /daily/new.
type newGameReq struct {
	Answer   string `json:"answer"` // optional fixed answer (testing)
	Length   int    `json:"length"`
	Attempts int    `json:"attempts"`
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Width     int       `json:"width"`
	Attempts  int       `json:"attempts"`
	Date      string    `json:"date,omitempty"`
}

// decodeOptional decodes a JSON body, treating an empty body as zero values.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// sizes applies defaults and bounds to a requested length/attempts pair.
func (s *Server) sizes(req newGameReq) (length, attempts int, ok bool) {
	length, attempts = req.Length, req.Attempts
	if length == 0 {
		length = s.opts.WordLength
	}
	if attempts == 0 {
		attempts = s.opts.Attempts
	}
	ok = length > 0 && length <= maxWordLength && attempts > 0 && attempts <= maxAttempts
	return length, attempts, ok
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	length, attempts, ok := s.sizes(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_size")
		return
	}

	target := strings.ToLower(strings.TrimSpace(req.Answer))
	if target != "" {
		if !isLetters(target) || utf8.RuneCountInString(target) > maxWordLength {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
	} else {
		var err error
		target, err = s.opts.Words.Random(length)
		if errors.Is(err, words.ErrNoWords) {
			writeError(w, http.StatusUnprocessableEntity, "no_words_of_length")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "pick_failed")
			return
		}
	}
	s.startGame(w, r, target, attempts, "")
}

// startGame creates a session, stores it and responds with its token.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, target string, attempts int, date string) {
	sess, err := game.NewSession(target, attempts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := uuid.NewString()
	if err := s.opts.Store.Save(r.Context(), sess.Snapshot(id)); err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.issue(id)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Info().Str("gameId", id).Int("width", sess.Width()).Int("attempts", attempts).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID: id, Token: tok, ExpiresAt: exp.UTC(),
		Width: sess.Width(), Attempts: attempts, Date: date,
	})
}

// authorize verifies the bearer token and returns its game ID; it writes
// 401 and returns false when the token is missing or invalid.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw, err := bearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	id, err := s.tokens.verify(raw)
	if err != nil {
		log.Debug().Err(err).Msg("reject token")
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return "", false
	}
	return id, true
}

// load restores the session for id, writing 404/500 on failure.
func (s *Server) load(ctx context.Context, w http.ResponseWriter, id string) (*game.Session, bool) {
	snap, err := s.opts.Store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err == nil {
		var sess *game.Session
		if sess, err = game.Restore(snap); err == nil {
			return sess, true
		}
	}
	log.Error().Err(err).Str("gameId", id).Msg("load game")
	writeError(w, http.StatusInternalServerError, "load_failed")
	return nil, false
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Row       game.Row `json:"row"`
	State     string   `json:"state"` // "playing" | "won" | "lost"
	Remaining int      `json:"remaining"`
	Answer    string   `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID != "" && req.GameID != id {
		writeError(w, http.StatusUnauthorized, "token_mismatch")
		return
	}

	defer s.locks.lock(id)()

	sess, ok := s.load(r.Context(), w, id)
	if !ok {
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))
	if utf8.RuneCountInString(guess) != sess.Width() {
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	}
	row, err := sess.Play(guess)
	if errors.Is(err, game.ErrFinished) {
		writeError(w, http.StatusConflict, "game_finished")
		return
	}
	if err := s.opts.Store.Save(r.Context(), sess.Snapshot(id)); err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	res := guessRes{Row: row, State: sess.Status(), Remaining: sess.Remaining()}
	if answer, done := sess.Target(); done {
		res.Answer = answer
		log.Info().Str("gameId", id).Str("state", res.State).Int("guesses", sess.Summary().Attempts).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

// gameView is returned by GET /game/{id}.
type gameView struct {
	GameID    string         `json:"gameId"`
	Board     game.BoardView `json:"board"`
	State     string         `json:"state"`
	Remaining int            `json:"remaining"`
	Width     int            `json:"width"`
	Attempts  int            `json:"attempts"`
	Answer    string         `json:"answer,omitempty"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}
	if chi.URLParam(r, "id") != id {
		writeError(w, http.StatusUnauthorized, "token_mismatch")
		return
	}
	sess, ok := s.load(r.Context(), w, id)
	if !ok {
		return
	}
	view := gameView{
		GameID: id, Board: sess.Board(), State: sess.Status(),
		Remaining: sess.Remaining(), Width: sess.Width(), Attempts: sess.Total(),
	}
	if answer, done := sess.Target(); done {
		view.Answer = answer
	}
	writeJSON(w, http.StatusOK, view)
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
