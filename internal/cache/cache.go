// Package cache provides an in-memory TTL store keyed by topic.
//
// Entries are immutable once written; a re-fetch replaces an entry wholesale.
// A stale entry is treated exactly like a missing one, which is the normal
// trigger for a re-fetch, not an error condition.
package cache

import (
	"sync"
	"time"
)

// Store maps keys to values with a fixed time-to-live. The zero value is not
// usable; create with New. Safe for concurrent use.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

type entry[V any] struct {
	value   V
	written time.Time
}

// New creates a store with the given TTL. now is the clock used for expiry
// checks; pass nil for time.Now. Tests inject a controllable clock.
func New[V any](ttl time.Duration, now func() time.Time) *Store[V] {
	if now == nil {
		now = time.Now
	}
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the live value for key. The second result is false when the key
// is absent or its entry has outlived the TTL.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().Sub(e.written) > s.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put writes value under key, replacing any previous entry.
func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, written: s.now()}
	s.mu.Unlock()
}
