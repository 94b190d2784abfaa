// internal/store/memory.go
//
// In-memory implementation of the session Store interface: a lightweight
// persistence layer for live round sessions. State is lost on process
// restart; finished rounds are persisted separately in SQLite.

package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/nagare-games/wordstrike/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one hosted round plus the serialization the lock-free engine
// requires: the engine has exactly one logical owner, and that owner is
// whoever holds Mu. Pending holds input edges accumulated between frames.
type Session struct {
	ID      string
	OwnerID string // user or anonymous identifier, for result persistence
	UserID  string // set only when the owner is an authenticated user
	Daily   string // date key when this is a daily-challenge round, else ""

	Mu        sync.Mutex
	Round     *game.Round
	Pending   game.Input
	StartedAt time.Time
	Recorded  bool // finished result already persisted
}

// TakeInput returns the accumulated input sample and clears the edges.
// The accelerate level is retained until released. Callers hold Mu.
func (s *Session) TakeInput() game.Input {
	in := s.Pending
	s.Pending.Up = false
	s.Pending.Down = false
	return in
}

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; no-op if absent.
	Delete(ctx context.Context, id string)
}

// memory is a map-based Store implementation guarded by an RWMutex.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// NewID creates a 22-char URL-safe, crypto-random identifier (no padding).
func NewID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
