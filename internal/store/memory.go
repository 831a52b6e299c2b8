// internal/store/memory.go
//
// In-memory implementation of the Store interface.
//
// Characteristics:
//   - Stores game snapshots keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/robalobadob/wordle/apps/go-game/internal/game"
)

var ErrNotFound = errors.New("not found")

// Store persists in-flight games between host requests.
// Implementations: memory (this file), SQLite (sqlite.go).
type Store interface {
	// Save persists or updates a game snapshot.
	Save(ctx context.Context, snap game.Snapshot) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (game.Snapshot, error)
}

type memory struct {
	mu    sync.RWMutex
	games map[string]game.Snapshot
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.Snapshot)}
}

func (m *memory) Save(ctx context.Context, snap game.Snapshot) error {
	snap.Guesses = slices.Clone(snap.Guesses)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[snap.ID] = snap
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (game.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.games[id]
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}
	snap.Guesses = slices.Clone(snap.Guesses)
	return snap, nil
}
