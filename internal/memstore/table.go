// Package memstore is an in-process row store with composable, deferred
// queries. Repositories use it when no database is configured and tests use it
// as a store whose round trips can be counted.
package memstore

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// FieldCopier copies a single named field from src into dst.
type FieldCopier[T any] func(dst *T, src T)

// Stats counts store round trips.
type Stats struct {
	Fetches         int64
	NarrowedFetches int64
	Counts          int64
}

// Option configures a Table.
type Option[T any] func(*Table[T])

// WithFields registers the fields queries may be narrowed to.
func WithFields[T any](fields map[string]FieldCopier[T]) Option[T] {
	return func(t *Table[T]) {
		for name, cp := range fields {
			t.fields[name] = cp
		}
	}
}

// WithLatency delays every fetch, simulating a slow store.
func WithLatency[T any](d time.Duration) Option[T] {
	return func(t *Table[T]) { t.latency = d }
}

// Table is a goroutine-safe ordered set of rows.
type Table[T any] struct {
	mu      sync.RWMutex
	rows    []T
	fields  map[string]FieldCopier[T]
	latency time.Duration
	failErr error

	fetches  atomic.Int64
	narrowed atomic.Int64
	counts   atomic.Int64
}

// NewTable returns an empty table configured by opts.
func NewTable[T any](opts ...Option[T]) *Table[T] {
	t := &Table[T]{fields: make(map[string]FieldCopier[T])}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Insert appends rows in the given order.
func (t *Table[T]) Insert(rows ...T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, rows...)
}

// Update applies fn to every row matching match and returns how many changed.
func (t *Table[T]) Update(match func(T) bool, fn func(*T)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for i := range t.rows {
		if match(t.rows[i]) {
			fn(&t.rows[i])
			n++
		}
	}
	return n
}

// Find returns the first row matching match.
func (t *Table[T]) Find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if match(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of stored rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Truncate removes all rows and resets the counters.
func (t *Table[T]) Truncate() {
	t.mu.Lock()
	t.rows = nil
	t.failErr = nil
	t.mu.Unlock()
	t.fetches.Store(0)
	t.narrowed.Store(0)
	t.counts.Store(0)
}

// FailWith makes every subsequent fetch and count return err. A nil err clears it.
func (t *Table[T]) FailWith(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failErr = err
}

// Stats returns the round trip counters.
func (t *Table[T]) Stats() Stats {
	return Stats{
		Fetches:         t.fetches.Load(),
		NarrowedFetches: t.narrowed.Load(),
		Counts:          t.counts.Load(),
	}
}

// Query starts a deferred query over all rows.
func (t *Table[T]) Query() Query[T] {
	return Query[T]{table: t, limit: -1}
}

func (t *Table[T]) snapshot() ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.failErr != nil {
		return nil, t.failErr
	}
	return slices.Clone(t.rows), nil
}
