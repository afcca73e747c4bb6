package listing

import "context"

// Source is a composed but not yet executed query. Each Fetch is one round
// trip to the backing store.
type Source[T any] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// Narrower is implemented by sources that can restrict the fields they load.
// Narrow reports false when the store cannot honor the field set, in which
// case the caller falls back to full rows.
type Narrower[T any] interface {
	Source[T]
	Narrow(fields []string) (Source[T], bool)
}

// Projection converts stored elements into another shape. Fields names the
// store fields Map reads; an empty list means Map needs the whole element.
type Projection[T, P any] struct {
	Fields []string
	Map    func(T) P
}

// Map builds a projection that needs whole elements.
func Map[T, P any](fn func(T) P) Projection[T, P] {
	return Projection[T, P]{Map: fn}
}
