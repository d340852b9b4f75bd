package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// DecideFunc is a pure decision over the history selected by a filter.
type DecideFunc func(history core.DomainEvents) core.DecisionResult

// ExecuteDecision runs one Query -> Unmarshal -> Decide -> Append cycle with strong consistency.
// The append is conditional on the same filter and the max sequence number seen by the query,
// so a concurrent write to the same stream surfaces as eventstore.ErrConcurrencyConflict.
//
// It returns whether the decision was idempotent and the business error of the decision, if any.
func ExecuteDecision(
	ctx context.Context,
	eventStore EventStore,
	filter eventstore.Filter,
	decide DecideFunc,
) (bool, error) {

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := eventStore.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return false, err
	}

	result := decide(history)

	if !result.HasEventToAppend() {
		return result.IsIdempotent(), result.HasError()
	}

	storableEvent, err := StorableEventFrom(result.Event, NewCommandMetadata())
	if err != nil {
		return false, err
	}

	if err = eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return false, err
	}

	return false, result.HasError()
}

// HandleWithRetry executes fn with the retry policy and builds the HandlerResult.
// Errors are translated with ToCirculationError.
func HandleWithRetry(
	ctx context.Context,
	fn func(ctx context.Context) (bool, error),
	retryOptions ...RetryOption,
) (HandlerResult, error) {

	var isIdempotent bool

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := fn(retryCtx)
		isIdempotent = idempotent

		return execErr
	}, retryOptions...)

	if err != nil {
		return NewErrorResult(retryMetrics), ToCirculationError(err)
	}

	if isIdempotent {
		return NewIdempotentResult(retryMetrics), nil
	}

	return NewSuccessResult(retryMetrics), nil
}
