package querycache

import (
	"errors"
	"sync"
	"time"
)

// Store defaults.
const (
	// DefaultTTL is the stale-time applied to entries when the caller
	// does not override it.
	DefaultTTL = 5 * time.Minute

	// DefaultMaxEntries bounds the store before oldest-first eviction
	// kicks in.
	DefaultMaxEntries = 1024

	// gcIdleFactor multiplies the TTL to decide when an untouched stale
	// entry is collected by Sweep.
	gcIdleFactor = 2
)

// Common store errors.
var (
	ErrEmptyKey = errors.New("query key cannot be empty")
	ErrDisabled = errors.New("query cache is disabled")
)

// Entry is a cached query result with freshness metadata.
type Entry struct {
	// Data is the cached value, typically a typed slice or struct
	// stored by the owning entity service.
	Data any

	// FetchedAt is when the value was last written.
	FetchedAt time.Time

	// StaleAfter is when the value stops being served fresh.
	StaleAfter time.Time

	// Invalidated marks the entry explicitly stale ahead of its TTL.
	Invalidated bool
}

// Fresh reports whether the entry may be served without a refetch.
func (e Entry) Fresh(now time.Time) bool {
	return !e.Invalidated && now.Before(e.StaleAfter)
}

// Store is a thread-safe, process-wide cache of query results keyed by
// query Key. Reads are open to any caller; writes and invalidations go
// through the entity service that owns the key's subtree (a convention,
// not a lock — see the cross-invalidation notes in the entity package).
//
// Concurrent writes to the same key follow last-write-wins; the store
// makes no ordering promise across distinct in-flight requests.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	keys       map[string]Key
	ttl        time.Duration
	maxEntries int
	enabled    bool

	// now is the clock source, overridable in tests.
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the default stale-time.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries overrides the eviction bound.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Disabled returns a store that rejects all operations. Callers treat
// ErrDisabled like a miss, so --no-cache degrades to plain fetching.
func Disabled() *Store {
	return &Store{enabled: false}
}

// NewStore creates an enabled store with the given options.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries:    make(map[string]Entry),
		keys:       make(map[string]Key),
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		enabled:    true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether the store accepts reads and writes.
func (s *Store) Enabled() bool {
	return s.enabled
}

// GetFresh returns the cached value for key if it exists and is still
// fresh. Stale or invalidated entries report a miss but stay resident
// until refreshed or swept.
func (s *Store) GetFresh(key Key) (any, bool) {
	if !s.enabled || len(key) == 0 {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key.index()]
	if !ok || !entry.Fresh(s.now()) {
		return nil, false
	}
	return entry.Data, true
}

// Get returns the entry for key regardless of freshness.
func (s *Store) Get(key Key) (Entry, bool) {
	if !s.enabled || len(key) == 0 {
		return Entry{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key.index()]
	return entry, ok
}

// Put stores data under key, refreshing its stale-time. Existing data
// for the key is overwritten (last write wins).
func (s *Store) Put(key Key, data any) error {
	if !s.enabled {
		return ErrDisabled
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	idx := key.index()
	if _, exists := s.entries[idx]; !exists && len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}

	s.entries[idx] = Entry{
		Data:       data,
		FetchedAt:  now,
		StaleAfter: now.Add(s.ttl),
	}
	s.keys[idx] = key
	return nil
}

// Invalidate marks every entry whose key starts with prefix as stale and
// returns the number of entries touched. Stale entries force a refetch
// on next access; their data remains until overwritten or swept.
func (s *Store) Invalidate(prefix Key) int {
	if !s.enabled || len(prefix) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	touched := 0
	for idx, key := range s.keys {
		if !key.HasPrefix(prefix) {
			continue
		}
		entry := s.entries[idx]
		if !entry.Invalidated {
			entry.Invalidated = true
			s.entries[idx] = entry
			touched++
		}
	}
	return touched
}

// Remove evicts the entry for key immediately. Removing an absent key is
// a no-op.
func (s *Store) Remove(key Key) {
	if !s.enabled || len(key) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := key.index()
	delete(s.entries, idx)
	delete(s.keys, idx)
}

// Sweep garbage-collects entries that have sat stale or expired beyond
// the idle window. Returns the number of entries removed.
func (s *Store) Sweep() int {
	if !s.enabled {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for idx, entry := range s.entries {
		idleCutoff := entry.FetchedAt.Add(gcIdleFactor * s.ttl)
		if (entry.Invalidated || now.After(entry.StaleAfter)) && now.After(idleCutoff) {
			delete(s.entries, idx)
			delete(s.keys, idx)
			removed++
		}
	}
	return removed
}

// Len returns the number of resident entries, fresh or stale.
func (s *Store) Len() int {
	if !s.enabled {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// evictOldestLocked drops the entry with the oldest FetchedAt. Caller
// holds the write lock.
func (s *Store) evictOldestLocked() {
	var oldestIdx string
	var oldestAt time.Time
	first := true
	for idx, entry := range s.entries {
		if first || entry.FetchedAt.Before(oldestAt) {
			oldestIdx = idx
			oldestAt = entry.FetchedAt
			first = false
		}
	}
	if oldestIdx != "" {
		delete(s.entries, oldestIdx)
		delete(s.keys, oldestIdx)
	}
}
