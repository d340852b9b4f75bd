package cancelreservation

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Decide implements the business logic to determine whether a reservation can be canceled.
//
// Business Rules:
//
//	GIVEN: A known book and a registered patron holding a current reservation on it
//	WHEN: CancelReservation command is received
//	THEN: ReservationCanceled event is generated, which removes the transaction
//	ERROR: "Book not found" if the book was never added to circulation
//	ERROR: "Customer not found" if the patron is not registered
//	ERROR: "No active reservation found for this book." if the patron holds no current reservation
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()
	patronID := command.PatronID.String()

	if !core.BookIsKnown(history, bookID) {
		return reject(command, core.NotFound(core.DescriptionBookNotFound))
	}

	if _, registered := core.RegisteredPatron(history, patronID); !registered {
		return reject(command, core.NotFound(core.DescriptionPatronNotFound))
	}

	reservation, found := core.ActiveReservationOf(
		core.ProjectTransactions(history, bookID),
		patronID,
		command.OccurredAt,
	)
	if !found {
		return reject(command, core.NotFound(core.DescriptionNoActiveReservation))
	}

	return core.SuccessDecision(
		core.BuildReservationCanceled(reservation.ID, command.BookID, command.PatronID, command.OccurredAt),
	)
}

func reject(command Command, rejection core.Rejection) core.DecisionResult {
	event := core.BuildCancelingReservationFailed(command.BookID.String(), rejection.Description, command.OccurredAt)

	return core.ErrorDecision(event, rejection)
}

// BuildEventFilter creates the filter for querying the circulation events of the book
// and the registration of the patron.
func BuildEventFilter(bookID uuid.UUID, patronID uuid.UUID) eventstore.Filter {
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
		OrMatching().
		AnyEventTypeOf(core.PatronRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("PatronID", patronID.String())).
		Finalize()
}
