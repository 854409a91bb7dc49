package datacache

import (
	"sync"
	"time"
)

// listCache holds one whole-collection snapshot with a TTL measured from
// the last successful fetch. The snapshot is replaced wholesale on refresh,
// never mutated in place.
type listCache[T any] struct {
	mu        sync.Mutex
	data      []T
	populated bool
	lastFetch time.Time
	ttl       time.Duration
}

func newListCache[T any](ttl time.Duration) *listCache[T] {
	return &listCache[T]{ttl: ttl}
}

// getFresh returns the snapshot only while it is inside the TTL window.
func (l *listCache[T]) getFresh() ([]T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.populated || time.Since(l.lastFetch) >= l.ttl {
		return nil, false
	}
	return l.data, true
}

// getAny returns the snapshot regardless of age, for stale-on-error reads.
func (l *listCache[T]) getAny() ([]T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data, l.populated
}

func (l *listCache[T]) set(data []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = data
	l.populated = true
	l.lastFetch = time.Now()
}

func (l *listCache[T]) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = nil
	l.populated = false
	l.lastFetch = time.Time{}
}

func (l *listCache[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.data)
}

// entityCache is a bounded per-key map. When the entry count exceeds the
// ceiling it evicts the oldest half by insertion order — an approximation
// of LRU that is cheap and good enough for a lookup-join cache.
type entityCache[T any] struct {
	mu      sync.Mutex
	entries map[string]T
	order   []string
	max     int
}

func newEntityCache[T any](max int) *entityCache[T] {
	return &entityCache[T]{
		entries: make(map[string]T),
		max:     max,
	}
}

func (e *entityCache[T]) get(key string) (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	val, ok := e.entries[key]
	return val, ok
}

func (e *entityCache[T]) put(key string, val T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.entries[key]; !exists {
		e.order = append(e.order, key)
	}
	e.entries[key] = val

	if len(e.entries) > e.max {
		// Keep the most recently inserted half.
		keep := e.max / 2
		drop := len(e.order) - keep
		for _, old := range e.order[:drop] {
			delete(e.entries, old)
		}
		e.order = append([]string(nil), e.order[drop:]...)
	}
}

func (e *entityCache[T]) clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = make(map[string]T)
	e.order = nil
}

func (e *entityCache[T]) len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}
