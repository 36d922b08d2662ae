// Package store keeps live game sessions in memory. Every session has its
// own lock, so all mutations of one game are serialised while different
// games proceed in parallel.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/campo-minato/internal/mines"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrFull     = errors.New("session limit reached")
)

type entry struct {
	mu       sync.Mutex
	session  *mines.Session
	lastUsed time.Time
	ended    bool
}

type Store struct {
	mu          sync.Mutex
	entries     map[string]*entry
	limit       int
	idleTimeout time.Duration
	now         func() time.Time
}

func New(limit int, idleTimeout time.Duration) *Store {
	return &Store{
		entries:     make(map[string]*entry),
		limit:       limit,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Create registers a session and returns its id.
func (s *Store) Create(session *mines.Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.limit {
		return "", ErrFull
	}
	id := uuid.NewString()
	s.entries[id] = &entry{
		session:  session,
		lastUsed: s.now(),
	}
	return id, nil
}

// With runs fn while holding the session's lock.
func (s *Store) With(id string, fn func(*mines.Session) error) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ended {
		return ErrNotFound
	}
	e.lastUsed = s.now()
	return fn(e.session)
}

// Delete ends a session. Calls to With that are already waiting for the
// session see [ErrNotFound].
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	e.ended = true
	e.session = nil
	e.mu.Unlock()
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep ends every session idle for longer than the idle timeout and
// returns how many were removed.
func (s *Store) Sweep() int {
	deadline := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	var idle []string
	for id, e := range s.entries {
		// sessions busy in With are not idle
		if !e.mu.TryLock() {
			continue
		}
		if e.lastUsed.Before(deadline) {
			idle = append(idle, id)
		}
		e.mu.Unlock()
	}
	s.mu.Unlock()

	removed := 0
	for _, id := range idle {
		if s.Delete(id) == nil {
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, logger *slog.Logger, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Info("ended idle sessions",
					slog.Int("count", n), slog.Int("remaining", s.Len()))
			}
		}
	}
}
