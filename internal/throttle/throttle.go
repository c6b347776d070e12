// Package throttle tracks failed login attempts per client address inside a
// rolling time window. The store is injected into the auth handler so a
// shared implementation can replace it in a multi-instance deployment.
package throttle

import (
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewStore(limit int, window time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Blocked reports whether the address has reached the attempt ceiling for
// the current window.
func (s *Store) Blocked(addr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[addr]
	if !ok {
		return false
	}
	if s.now().After(e.resetAt) {
		delete(s.entries, addr)
		return false
	}
	return e.count >= s.limit
}

// Fail records a failed attempt for the address.
func (s *Store) Fail(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[addr]
	if !ok || now.After(e.resetAt) {
		e = &entry{resetAt: now.Add(s.window)}
		s.entries[addr] = e
	}
	e.count++
}

// Reset clears the counter for the address after a successful login.
func (s *Store) Reset(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, addr)
}
