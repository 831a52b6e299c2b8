// internal/httpserver/routes_daily.go
//
// Daily endpoints:
//   - GET  /daily     → today's date key and default word length
//   - POST /daily/new → start a game whose target is the word of the day
//
// The word is picked deterministically from date + salt, so every player
// gets the same target on the same UTC day. Guesses go through /game/guess.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/robalobadob/wordle/apps/go-game/internal/daily"
	"github.com/robalobadob/wordle/apps/go-game/internal/words"
)

type dailyInfo struct {
	Date   string `json:"date"`
	Length int    `json:"length"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dailyInfo{Date: daily.DateKey(s.opts.Now()), Length: s.opts.WordLength})
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
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
	now := s.opts.Now()
	target, _, err := s.opts.Words.Daily(now, s.opts.DailySalt, length)
	if errors.Is(err, words.ErrNoWords) {
		writeError(w, http.StatusUnprocessableEntity, "no_words_of_length")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "pick_failed")
		return
	}
	s.startGame(w, r, target, attempts, daily.DateKey(now))
}
