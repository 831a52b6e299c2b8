package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalobadob/wordle/apps/go-game/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		WordLength: 5,
		Attempts:   6,
		DailySalt:  "salt",
		Port:       "0",
	}
}

func run(t *testing.T, cfg config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlayScriptWin(t *testing.T) {
	out, err := run(t, testConfig(), "", "play", "--word", "abc", "--attempts", "3", "--script", "cab,abc")
	if err != nil {
		t.Fatalf("play: %v\n%s", err, out)
	}
	for _, want := range []string{"Guess the 3-letter word in 3 attempts.", "|cab|", " ???", "|abc|", " ===", "You won in 2 guesses!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayScriptLoss(t *testing.T) {
	out, err := run(t, testConfig(), "", "play", "--word", "abc", "--attempts", "1", "--script", "xyz")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, `You lost! The word was "abc".`) {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestPlayHuman(t *testing.T) {
	out, err := run(t, testConfig(), "no\nTEST\n", "play", "--word", "test")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "Invalid input, try again") || !strings.Contains(out, "You won in 1 guess!") {
		t.Errorf("Unexpected output:\n%s", out)
	}
	// initial board + one row update
	if n := strings.Count(out, "|####|"); n != 6+5 {
		t.Errorf("Expected 11 empty rows across two renders, got %d", n)
	}
}

func TestPlayHumanClosedInput(t *testing.T) {
	out, err := run(t, testConfig(), "", "play", "--word", "test")
	if err == nil {
		t.Fatal("Expected error when input closes")
	}
	if !strings.Contains(out, "Game aborted.") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestPlayBot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("slate\ncrane\ntrace\ncrate\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.WordsFile = path
	out, err := run(t, cfg, "", "play", "--word", "crate", "--bot")
	if err != nil {
		t.Fatalf("play: %v\n%s", err, out)
	}
	if !strings.Contains(out, "You won") {
		t.Errorf("Bot should win:\n%s", out)
	}
}

func TestPlayDaily(t *testing.T) {
	a, err := run(t, testConfig(), "", "play", "--daily", "--date", "2025-01-01", "--attempts", "1", "--script", "zzzzz")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	b, _ := run(t, testConfig(), "", "play", "--daily", "--date", "2025-01-01", "--attempts", "1", "--script", "zzzzz")
	if a != b {
		t.Errorf("Same date should give the same word:\n%s\n%s", a, b)
	}
	if _, err := run(t, testConfig(), "", "play", "--daily", "--date", "01/01/2025"); err == nil {
		t.Error("Expected error for bad date")
	}
}

func TestPlayFlagErrors(t *testing.T) {
	cases := [][]string{
		{"play", "--bot", "--script", "abc"},
		{"play", "--attempts", "0"},
		{"play", "--word", "ab1"},
	}
	for _, args := range cases {
		if _, err := run(t, testConfig(), "", args...); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestPlayFallbackWord(t *testing.T) {
	cfg := testConfig()
	cfg.WordLength = 14
	out, err := run(t, cfg, "", "play", "--script", "test")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "Guess the 4-letter word") || !strings.Contains(out, "You won") {
		t.Errorf("Expected fallback to the default word:\n%s", out)
	}
}

func TestDailyCmd(t *testing.T) {
	out, err := run(t, testConfig(), "", "daily", "--date", "2025-03-04")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if !strings.HasPrefix(out, "2025-03-04: word #") || !strings.Contains(out, "(5 letters)") {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "secret"
	cfg.StoreDSN = filepath.Join(t.TempDir(), "data", "games.db")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := newRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"serve", "--port", "0"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve: %v\n%s", err, out.String())
	}
	if _, err := os.Stat(cfg.StoreDSN); err != nil {
		t.Errorf("Expected sqlite store at %s: %v", cfg.StoreDSN, err)
	}
}

func TestServeRejectsEmptySecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	if _, err := run(t, cfg, "", "serve", "--port", "0"); err == nil {
		t.Error("Expected serve to fail without a token secret")
	}
}
