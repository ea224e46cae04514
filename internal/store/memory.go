// internal/store/memory.go
//
// In-memory session store for running tables.
//
// Characteristics:
//   - Stores *Session values keyed by ID in a map.
//   - The map is guarded by an RWMutex; each Session carries its own mutex so
//     engine calls on one game are serialized without blocking other games.
//   - Sessions older than the TTL are evicted on Save; a zero TTL keeps
//     everything.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/fortune/internal/game"
)

// ErrNotFound is returned by Get for an unknown ID.
var ErrNotFound = errors.New("not found")

// Session is one hosted game plus the driver state the engine doesn't track.
type Session struct {
	ID        string
	Daily     bool
	Round     int       // 1-based round counter
	Awaiting  bool      // wheel landed on money; a guess is expected
	CreatedAt time.Time

	mu   sync.Mutex
	game *game.Game
}

// NewSession wraps g.
func NewSession(id string, g *game.Game) *Session {
	return &Session{ID: id, Round: 1, CreatedAt: time.Now().UTC(), game: g}
}

// Do runs fn with exclusive access to the session and its game.
func (s *Session) Do(fn func(s *Session, g *game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s, s.game)
}

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len is the number of live sessions.
	Len() int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewMemoryStore constructs a new in-memory Store whose sessions expire
// ttl after creation.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]*Session), ttl: ttl}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked(time.Now().UTC())
	m.sessions[s.ID] = s
	return nil
}

// evictLocked drops expired sessions. Caller holds m.mu.
func (m *memory) evictLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	cutoff := now.Add(-m.ttl)
	for id, s := range m.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
