package listing

import (
	"context"
	"errors"
)

var (
	// ErrNoBacking is returned by reads on a result that was not built by
	// FromQuery or FromSlice, or was given a nil query.
	ErrNoBacking = errors.New("listing: result has no backing source")
	// ErrNilProjection is returned when a projection carries no Map function.
	ErrNilProjection = errors.New("listing: projection has no map function")
)

// fetchError keeps store errors intact but guarantees that a failed fetch on a
// done context reports the context error as well.
func fetchError(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if ctxErr == nil || errors.Is(err, ctxErr) {
		return err
	}
	return errors.Join(ctxErr, err)
}
