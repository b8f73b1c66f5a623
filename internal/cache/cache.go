// Package cache provides a bulk-replaced, TTL-expiring snapshot store
// for reference data (members, workflows, teams).
//
// There is deliberately no incremental insert: the backing API only
// offers bulk list endpoints, so a snapshot is always replaced whole.
// Staleness is a property of the snapshot, not of individual entries.
// Two callers that both observe a stale store may both trigger a
// refill; each ReplaceAll installs one coherent snapshot atomically,
// so the last writer wins and the store is never torn.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a snapshot is served without a refill.
const DefaultTTL = 5 * time.Minute

// Store is a snapshot cache of values keyed by an id extracted from
// each value. Safe for concurrent use.
type Store[K comparable, V any] struct {
	key func(V) K
	ttl time.Duration
	now func() time.Time // swapped in tests

	mu       sync.Mutex
	entries  map[K]V
	order    []K
	filledAt time.Time
}

// New creates an empty Store. A store that has never been filled
// reports stale. key extracts the cache key from a value.
func New[K comparable, V any](ttl time.Duration, key func(V) K) *Store[K, V] {
	return &Store[K, V]{
		key:     key,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[K]V),
	}
}

// Get returns the cached value for id. It never triggers a refill;
// callers check Stale first.
func (s *Store[K, V]) Get(id K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[id]
	return v, ok
}

// Values returns all cached values in insertion order.
func (s *Store[K, V]) Values() []V {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]V, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// Len returns the number of cached values.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ReplaceAll swaps in a complete new snapshot and stamps its age.
// Entries from the previous snapshot are gone afterward. A duplicate
// key keeps its first position but takes the later value.
func (s *Store[K, V]) ReplaceAll(items []V) {
	entries := make(map[K]V, len(items))
	order := make([]K, 0, len(items))
	for _, item := range items {
		id := s.key(item)
		if _, seen := entries[id]; !seen {
			order = append(order, id)
		}
		entries[id] = item
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.order = order
	s.filledAt = s.now()
}

// Clear empties the store and resets it to never-filled, so the next
// Stale check reports true regardless of when the last refill ran.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[K]V)
	s.order = nil
	s.filledAt = time.Time{}
}

// Stale reports whether the snapshot must be refilled before being
// trusted: either it has never been filled, or its age exceeds the TTL.
func (s *Store[K, V]) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filledAt.IsZero() {
		return true
	}
	return s.now().Sub(s.filledAt) > s.ttl
}
