package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/maxviazov/listresult/internal/listing"
)

// Query is an immutable description of a read over a Table. Nothing touches
// the table until Fetch or Count is called.
type Query[T any] struct {
	table  *Table[T]
	preds  []func(T) bool
	cmp    func(a, b T) int
	limit  int
	offset int
	fields []string
}

// Where narrows the query to rows matching pred.
func (q Query[T]) Where(pred func(T) bool) Query[T] {
	q.preds = append(slices.Clip(q.preds), pred)
	return q
}

// OrderBy sorts matching rows with cmp; ties keep insertion order.
func (q Query[T]) OrderBy(cmp func(a, b T) int) Query[T] {
	q.cmp = cmp
	return q
}

// Limit caps the number of rows returned. A negative n removes the cap.
func (q Query[T]) Limit(n int) Query[T] {
	q.limit = n
	return q
}

// Offset skips the first n matching rows.
func (q Query[T]) Offset(n int) Query[T] {
	if n < 0 {
		n = 0
	}
	q.offset = n
	return q
}

// Paginate applies the page window.
func (q Query[T]) Paginate(p listing.Pagination) Query[T] {
	return q.Offset(p.Offset()).Limit(p.Limit())
}

// Narrow returns a query that only populates the named fields. It reports
// false if any field was not registered on the table.
func (q Query[T]) Narrow(fields []string) (listing.Source[T], bool) {
	for _, f := range fields {
		if _, ok := q.table.fields[f]; !ok {
			return nil, false
		}
	}
	q.fields = slices.Clone(fields)
	return q, true
}

// Count returns the number of rows matching the filters, ignoring the window.
func (q Query[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q.table.counts.Add(1)
	rows, err := q.table.snapshot()
	if err != nil {
		return 0, err
	}
	return len(q.filter(rows)), nil
}

// Fetch evaluates the query. A fetch abandoned through ctx returns no rows.
func (q Query[T]) Fetch(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q.table.fetches.Add(1)
	if len(q.fields) > 0 {
		q.table.narrowed.Add(1)
	}
	if d := q.table.latency; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	rows, err := q.table.snapshot()
	if err != nil {
		return nil, err
	}
	rows = q.filter(rows)
	if q.cmp != nil {
		slices.SortStableFunc(rows, q.cmp)
	}
	rows = window(rows, q.offset, q.limit)
	if len(q.fields) > 0 {
		rows = q.narrow(rows)
	}
	return rows, nil
}

func (q Query[T]) filter(rows []T) []T {
	if len(q.preds) == 0 {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		keep := true
		for _, p := range q.preds {
			if !p(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

func (q Query[T]) narrow(rows []T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		for _, f := range q.fields {
			q.table.fields[f](&out[i], r)
		}
	}
	return out
}

func window[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

var _ listing.Narrower[int] = Query[int]{}
