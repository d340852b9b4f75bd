package removebookcopy

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// state represents the current state projected from the event history.
type state struct {
	bookWasEverAdded    bool
	bookIsInCirculation bool
}

// Decide implements the business logic to determine whether a book copy should be removed from circulation.
//
// Business Rules:
//
//	GIVEN: A book copy with BookID
//	WHEN: RemoveBookCopy command is received
//	THEN: BookCopyRemovedFromCirculation event is generated
//	ERROR: "Book not found" if the book was never added
//	IDEMPOTENCY: If the book was already removed, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID.String())

	if !s.bookWasEverAdded {
		return core.ErrorDecision(nil, core.NotFound(core.DescriptionBookNotFound))
	}

	if !s.bookIsInCirculation {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookCopyRemovedFromCirculation(command.BookID, command.OccurredAt),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, bookID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookCopyAddedToCirculation:
			if e.BookID == bookID {
				s.bookWasEverAdded = true
				s.bookIsInCirculation = true
			}

		case core.BookCopyRemovedFromCirculation:
			if e.BookID == bookID {
				s.bookIsInCirculation = false
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events relevant for removing the given book.
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
