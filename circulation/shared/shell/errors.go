package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// ToCirculationError translates the error of a command or query handler into the error taxonomy of the core.
//
//   - business rejections pass through unchanged
//   - a concurrency conflict that survived the retries becomes core.LostRace
//   - context cancellation and deadline errors pass through unchanged
//   - everything else is joined with core.ErrStoreFailure
func ToCirculationError(err error) error {
	if err == nil {
		return nil
	}

	var rejection core.Rejection
	if errors.As(err, &rejection) {
		return err
	}

	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
		return core.LostRace(err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, core.ErrStoreFailure) {
		return err
	}

	return core.StoreFailure(err)
}
