// internal/httpserver/locks.go
//
// Per-game mutexes for the restore/play/save cycle. Entries are reference
// counted and dropped once no request holds or waits on them.

package httpserver

import "sync"

type gameLock struct {
	sync.Mutex
	refs int
}

type gameLocks struct {
	mu sync.Mutex
	m  map[string]*gameLock
}

func newGameLocks() *gameLocks {
	return &gameLocks{m: make(map[string]*gameLock)}
}

// lock blocks until id is held and returns its release func.
func (l *gameLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	gl, ok := l.m[id]
	if !ok {
		gl = &gameLock{}
		l.m[id] = gl
	}
	gl.refs++
	l.mu.Unlock()

	gl.Lock()
	return func() {
		gl.Unlock()
		l.mu.Lock()
		gl.refs--
		if gl.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}

// held reports how many game IDs currently have a lock entry.
func (l *gameLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
