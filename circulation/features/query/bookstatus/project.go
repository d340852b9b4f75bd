package bookstatus

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Project resolves the status of the book at query.At.
//
// Query Logic:
//
//	GIVEN: The circulation events of one book
//	WHEN: BookStatus query is executed
//	THEN: BookStatus with Available, Reserved{until} or Borrowed{until} is returned
//	ERROR: "Book not found" if the book is not in circulation
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) (BookStatus, error) {
	bookID := query.BookID.String()

	if !core.BookIsInCirculation(history, bookID) {
		return BookStatus{}, core.NotFound(core.DescriptionBookNotFound)
	}

	availability := core.AvailabilityAt(core.ProjectTransactions(history, bookID), query.At)

	result := BookStatus{
		BookID:         bookID,
		Status:         availability.Status.String(),
		SequenceNumber: uint(maxSequenceNumber),
	}

	until := availability.Until

	switch availability.Status {
	case core.Reserved:
		result.ReservedUntil = &until
	case core.Borrowed:
		result.BorrowedUntil = &until
	}

	return result, nil
}

// BuildEventFilter creates the filter for querying the circulation events of the book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopyAddedToCirculationEventType,
			core.BookCopyRemovedFromCirculationEventType,
			core.BookReservedEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
			core.ReservationCanceledEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		Finalize()
}
