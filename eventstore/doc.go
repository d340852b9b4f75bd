// Package eventstore provides the storage abstractions the circulation engine is built on:
// an append-only log of events that is queried and appended with "dynamic consistency boundaries".
//
// Instead of locking rows or aggregates, a writer queries all events matching a Filter,
// makes its decision, and appends new events with the same Filter and the
// MaxSequenceNumberUint it observed. The engine only inserts the events if no other event
// matching the Filter was appended in between, otherwise the append fails with
// ErrConcurrencyConflict and the caller can retry with a fresh read.
//
// Key types:
//   - Filter: criteria for querying events (event types and JSON payload predicates)
//   - StorableEvent: an event as it is stored and retrieved, built on scalars only
//   - ContextualLogger, MetricsCollector, TracingCollector: dependency-free
//     observability hooks that engines call if they are configured
//
// Engines: postgresengine (PostgreSQL via pgx, database/sql or sqlx) and memoryengine (in-process).
//
// Common usage pattern:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.BookReservedEventType,
//			core.BookBorrowedEventType,
//			core.BookReturnedEventType).
//		AndAnyPredicateOf(P("BookID", bookID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	newEvent, err := eventstore.BuildStorableEvent(eventType, time.Now(), payload, metadata)
//	err = store.Append(ctx, filter, maxSeq, newEvent)
package eventstore
