package addbookcopy

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Decide implements the business logic to determine whether a book copy should be added to circulation.
//
// Business Rules:
//
//	GIVEN: A book copy with BookID
//	WHEN: AddBookCopy command is received
//	THEN: BookCopyAddedToCirculation event is generated
//	ERROR: None (always succeeds)
//	IDEMPOTENCY: If the book is already in circulation, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if core.BookIsInCirculation(history, command.BookID.String()) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookCopyAddedToCirculation(
			command.BookID,
			command.ISBN,
			command.Title,
			command.Authors,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for querying all events relevant for adding the given book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopyAddedToCirculationEventType,
			core.BookCopyRemovedFromCirculationEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		Finalize()
}
