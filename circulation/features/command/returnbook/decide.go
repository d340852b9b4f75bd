package returnbook

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Decide implements the business logic to determine whether a book can be returned.
//
// Business Rules:
//
//	GIVEN: A known book with an open borrow transaction
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event closing the most recent open borrow is generated
//	ERROR: "Book not found" if the book was never added to circulation
//	ERROR: "No borrowed record found for this book." if there is no open borrow
//
// An overdue borrow can still be returned, its window has no effect here.
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()

	if !core.BookIsKnown(history, bookID) {
		return reject(command, core.NotFound(core.DescriptionBookNotFound))
	}

	borrow, found := core.LatestOpenBorrow(core.ProjectTransactions(history, bookID))
	if !found {
		return reject(command, core.NotFound(core.DescriptionNothingToReturn))
	}

	return core.SuccessDecision(
		core.BuildBookReturned(borrow.ID, command.BookID, borrow.PatronID, command.OccurredAt),
	)
}

func reject(command Command, rejection core.Rejection) core.DecisionResult {
	event := core.BuildReturningBookFailed(command.BookID.String(), rejection.Description, command.OccurredAt)

	return core.ErrorDecision(event, rejection)
}

// BuildEventFilter creates the filter for querying the circulation events of the book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopyAddedToCirculationEventType,
			core.BookReservedEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
			core.ReservationCanceledEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		Finalize()
}
