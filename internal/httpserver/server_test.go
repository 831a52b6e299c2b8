package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordle/apps/go-game/internal/words"
)

func newTestServer(t *testing.T, mod func(*Options)) *Server {
	t.Helper()
	opts := Options{
		Words:      words.New([]string{"crane", "slate", "abc"}),
		Secret:     "test-secret",
		WordLength: 5,
		Attempts:   6,
		DailySalt:  "salt",
		RateRPS:    1000,
		RateBurst:  1000,
	}
	if mod != nil {
		mod(&opts)
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

type slotJSON struct {
	Letter string `json:"letter"`
	Mark   string `json:"mark"`
}

type rowJSON struct {
	Word  string     `json:"word"`
	Slots []slotJSON `json:"slots"`
	Empty bool       `json:"empty"`
	Width int        `json:"width"`
}

type guessJSON struct {
	Row       rowJSON `json:"row"`
	State     string  `json:"state"`
	Remaining int     `json:"remaining"`
	Answer    string  `json:"answer"`
}

type viewJSON struct {
	GameID    string    `json:"gameId"`
	Board     []rowJSON `json:"board"`
	State     string    `json:"state"`
	Remaining int       `json:"remaining"`
	Width     int       `json:"width"`
	Attempts  int       `json:"attempts"`
	Answer    string    `json:"answer"`
}

func marks(r rowJSON) string {
	var b strings.Builder
	for _, s := range r.Slots {
		b.WriteString(s.Mark[:1])
	}
	return b.String()
}

func startGame(t *testing.T, s *Server, req newGameReq) newGameRes {
	t.Helper()
	w := do(t, s, http.MethodPost, "/game/new", "", req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /game/new returned %d: %s", w.Code, w.Body.String())
	}
	return decode[newGameRes](t, w)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("GET /health = %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %s", ct)
	}
	if w := do(t, s, http.MethodGet, "/nope", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d", w.Code)
	}
}

func TestGameFlowWin(t *testing.T) {
	s := newTestServer(t, nil)
	g := startGame(t, s, newGameReq{Answer: "ABC", Attempts: 2})
	if g.Width != 3 || g.Attempts != 2 || g.Token == "" || g.GameID == "" {
		t.Fatalf("Unexpected new game %+v", g)
	}

	w := do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{GameID: g.GameID, Guess: "cab"})
	if w.Code != http.StatusOK {
		t.Fatalf("guess returned %d: %s", w.Code, w.Body.String())
	}
	res := decode[guessJSON](t, w)
	if res.State != "playing" || res.Remaining != 1 || res.Answer != "" {
		t.Errorf("Unexpected response %+v", res)
	}
	if res.Row.Word != "cab" || marks(res.Row) != "ppp" {
		t.Errorf("row = %+v", res.Row)
	}

	w = do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: " ABC "})
	res = decode[guessJSON](t, w)
	if res.State != "won" || res.Remaining != 1 || res.Answer != "abc" || marks(res.Row) != "hhh" {
		t.Errorf("Unexpected winning response %+v", res)
	}

	w = do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "abc"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 after finish, got %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/game/"+g.GameID, g.Token, nil)
	view := decode[viewJSON](t, w)
	if view.State != "won" || view.Answer != "abc" || len(view.Board) != 2 {
		t.Fatalf("Unexpected view %+v", view)
	}
	if view.Board[0].Word != "cab" || view.Board[1].Word != "abc" {
		t.Errorf("board = %+v", view.Board)
	}
}

func TestGameFlowLoss(t *testing.T) {
	s := newTestServer(t, nil)
	g := startGame(t, s, newGameReq{Answer: "abc", Attempts: 1})

	res := decode[guessJSON](t, do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "xyz"}))
	if res.State != "lost" || res.Remaining != 0 || res.Answer != "abc" || marks(res.Row) != "mmm" {
		t.Errorf("Unexpected response %+v", res)
	}
}

func TestInvalidGuessKeepsState(t *testing.T) {
	s := newTestServer(t, nil)
	g := startGame(t, s, newGameReq{Answer: "abc"})

	for _, bad := range []string{"", "ab", "abcd"} {
		w := do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: bad})
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invalid_guess") {
			t.Errorf("guess %q: %d %s", bad, w.Code, w.Body.String())
		}
	}

	view := decode[viewJSON](t, do(t, s, http.MethodGet, "/game/"+g.GameID, g.Token, nil))
	if view.State != "playing" || view.Remaining != 6 || view.Answer != "" {
		t.Errorf("Unexpected view %+v", view)
	}
	for i, row := range view.Board {
		if !row.Empty || row.Width != 3 {
			t.Errorf("row %d = %+v", i, row)
		}
	}
}

func TestAuthorization(t *testing.T) {
	s := newTestServer(t, nil)
	a := startGame(t, s, newGameReq{Answer: "abc"})
	b := startGame(t, s, newGameReq{Answer: "abc"})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"no token", http.MethodPost, "/game/guess", "", guessReq{Guess: "abc"}, http.StatusUnauthorized},
		{"garbage token", http.MethodPost, "/game/guess", "nope", guessReq{Guess: "abc"}, http.StatusUnauthorized},
		{"other game in body", http.MethodPost, "/game/guess", a.Token, guessReq{GameID: b.GameID, Guess: "abc"}, http.StatusUnauthorized},
		{"other game in path", http.MethodGet, "/game/" + b.GameID, a.Token, nil, http.StatusUnauthorized},
		{"own game", http.MethodGet, "/game/" + a.GameID, a.Token, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.token, tt.body)
			if w.Code != tt.want {
				t.Errorf("got %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	other := newTestServer(t, func(o *Options) { o.Secret = "another-secret" })
	if w := do(t, other, http.MethodGet, "/game/"+a.GameID, a.Token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Token from another secret accepted: %d", w.Code)
	}
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer(t, nil)
	tok, _, err := s.tokens.issue("missing")
	if err != nil {
		t.Fatal(err)
	}
	if w := do(t, s, http.MethodGet, "/game/missing", tok, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestNewGameRandomTarget(t *testing.T) {
	s := newTestServer(t, nil)
	g := startGame(t, s, newGameReq{})
	if g.Width != 5 || g.Attempts != 6 {
		t.Errorf("Expected 5x6 defaults, got %+v", g)
	}

	w := do(t, s, http.MethodPost, "/game/new", "", newGameReq{Length: 7})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for missing length, got %d", w.Code)
	}
	w = do(t, s, http.MethodPost, "/game/new", "", newGameReq{Attempts: maxAttempts + 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for too many attempts, got %d", w.Code)
	}
	w = do(t, s, http.MethodPost, "/game/new", "", newGameReq{Answer: "ab1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-letter answer, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/game/new", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad json, got %d", rec.Code)
	}
}

func TestDaily(t *testing.T) {
	day := time.Date(2025, 5, 17, 9, 0, 0, 0, time.UTC)
	list := words.New([]string{"crane", "slate", "brave", "grape"})
	s := newTestServer(t, func(o *Options) {
		o.Words = list
		o.Now = func() time.Time { return day }
	})

	info := decode[dailyInfo](t, do(t, s, http.MethodGet, "/daily", "", nil))
	if info.Date != "2025-05-17" || info.Length != 5 {
		t.Errorf("Unexpected info %+v", info)
	}

	w := do(t, s, http.MethodPost, "/daily/new", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /daily/new returned %d: %s", w.Code, w.Body.String())
	}
	g := decode[newGameRes](t, w)
	if g.Date != "2025-05-17" {
		t.Errorf("date = %q", g.Date)
	}

	want, _, _ := list.Daily(day, "salt", 5)
	res := decode[guessJSON](t, do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: want}))
	if res.State != "won" || res.Answer != want {
		t.Errorf("Expected daily word %q to win, got %+v", want, res)
	}

	if w := do(t, s, http.MethodPost, "/daily/new", "", newGameReq{Length: 3}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(o *Options) { o.RateRPS, o.RateBurst = 1, 1 })
	if w := do(t, s, http.MethodPost, "/game/new", "", nil); w.Code != http.StatusOK {
		t.Fatalf("first request returned %d", w.Code)
	}
	w := do(t, s, http.MethodPost, "/game/new", "", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("Read-only routes should not be limited, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, func(o *Options) { o.ClientOrigin = "http://example.test" })
	w := do(t, s, http.MethodOptions, "/game/new", "", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.test" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestConcurrentGuessesSameGame(t *testing.T) {
	s := newTestServer(t, nil)
	g := startGame(t, s, newGameReq{Answer: "abc", Attempts: 8})

	var wg sync.WaitGroup
	codes := make(chan int, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "xyz"}).Code
		}()
	}
	wg.Wait()
	close(codes)
	for c := range codes {
		if c != http.StatusOK {
			t.Errorf("Concurrent guess returned %d", c)
		}
	}

	v := decode[viewJSON](t, do(t, s, http.MethodGet, "/game/"+g.GameID, g.Token, nil))
	if v.State != "lost" || v.Remaining != 0 {
		t.Errorf("Expected every guess applied once, got state=%s remaining=%d", v.State, v.Remaining)
	}
	for i, r := range v.Board {
		if r.Empty || r.Word != "xyz" {
			t.Errorf("Row %d = %+v", i, r)
		}
	}
}

func TestServeShutdown(t *testing.T) {
	s := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("GET /health = %d", res.StatusCode)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Serve returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestListenAndServeBadAddr(t *testing.T) {
	s := newTestServer(t, nil)
	if err := s.ListenAndServe(context.Background(), "127.0.0.1:-1"); err == nil {
		t.Error("Expected listen error for invalid port")
	}
}
