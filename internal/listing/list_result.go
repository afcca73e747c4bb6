package listing

import (
	"context"
	"slices"
)

// backing is the sealed set of storage modes a ListResult can be in.
type backing[T any] interface {
	isBacking()
}

type deferred[T any] struct {
	query Source[T]
}

type materialized[T any] struct {
	items []T
}

func (deferred[T]) isBacking()     {}
func (materialized[T]) isBacking() {}

// ListResult is one page of data, backed either by a deferred query or by an
// already fetched slice. It is immutable once built.
type ListResult[T any] struct {
	page    PageDetail
	backing backing[T]
}

// FromQuery builds a result whose data is fetched from q on every read.
// total is the number of records matching the unpaginated query. A nil q
// leaves the result without backing; a typed nil (a nil pointer wrapped in
// Source) is not detected and will panic on read, so callers pass a real query.
func FromQuery[T any](q Source[T], p Pagination, total int) ListResult[T] {
	r := ListResult[T]{page: NewPageDetail(p, total)}
	if q != nil {
		r.backing = deferred[T]{query: q}
	}
	return r
}

// FromSlice builds a result over items, which must already be the requested
// page. The slice is copied.
func FromSlice[T any](items []T, p Pagination, total int) ListResult[T] {
	return ListResult[T]{
		page:    NewPageDetail(p, total),
		backing: materialized[T]{items: slices.Clone(items)},
	}
}

// Page returns the paging metadata.
func (r ListResult[T]) Page() PageDetail { return r.page }

// IsQueryable reports whether reads go to the backing store.
func (r ListResult[T]) IsQueryable() bool {
	_, ok := r.backing.(deferred[T])
	return ok
}

// GetData returns every element of the page in source order. In deferred mode
// it performs exactly one fetch; in materialized mode it returns a copy and
// ignores ctx.
func (r ListResult[T]) GetData(ctx context.Context) ([]T, error) {
	switch b := r.backing.(type) {
	case deferred[T]:
		items, err := b.query.Fetch(ctx)
		if err != nil {
			return nil, fetchError(ctx, err)
		}
		return items, nil
	case materialized[T]:
		return slices.Clone(b.items), nil
	default:
		return nil, ErrNoBacking
	}
}

// ProjectTo applies proj to every element of the page and returns the results
// in source order.
//
// In deferred mode the projection's field set is pushed into the query when the
// source supports narrowing, so only those fields are loaded by the single
// fetch. Sources that cannot narrow return full rows which are then mapped.
func ProjectTo[T, P any](ctx context.Context, r ListResult[T], proj Projection[T, P]) ([]P, error) {
	if proj.Map == nil {
		return nil, ErrNilProjection
	}
	switch b := r.backing.(type) {
	case deferred[T]:
		src := b.query
		if n, ok := src.(Narrower[T]); ok && len(proj.Fields) > 0 {
			if narrowed, ok := n.Narrow(proj.Fields); ok {
				src = narrowed
			}
		}
		items, err := src.Fetch(ctx)
		if err != nil {
			return nil, fetchError(ctx, err)
		}
		return mapAll(items, proj.Map), nil
	case materialized[T]:
		return mapAll(b.items, proj.Map), nil
	default:
		return nil, ErrNoBacking
	}
}

func mapAll[T, P any](items []T, fn func(T) P) []P {
	out := make([]P, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
