package reservebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Decide implements the business logic to determine whether a patron may reserve a book.
//
// Business Rules:
//
//	GIVEN: A book in circulation and a registered patron
//	WHEN: ReserveBook command is received
//	THEN: BookReserved event with ReservedUntil = now + reservationWindow is generated
//	ERROR: "Book not found" if the book is not in circulation
//	ERROR: "Customer not found" if the patron is not registered
//	ERROR: "This book is already reserved by this customer. They can borrow it." if the patron holds the reservation
//	ERROR: "This book is already reserved by someone else." if another patron holds a reservation
//	ERROR: "This book is already borrowed by you. You cannot borrow it." / "... by someone else." if the book is borrowed
func Decide(history core.DomainEvents, command Command, reservationWindow time.Duration) core.DecisionResult {
	bookID := command.BookID.String()
	patronID := command.PatronID.String()

	if !core.BookIsInCirculation(history, bookID) {
		return reject(command, core.NotFound(core.DescriptionBookNotFound))
	}

	if _, registered := core.RegisteredPatron(history, patronID); !registered {
		return reject(command, core.NotFound(core.DescriptionPatronNotFound))
	}

	availability := core.AvailabilityAt(core.ProjectTransactions(history, bookID), command.OccurredAt)
	sameHolder := availability.IsHeldBy(patronID)

	if core.NextTransition(availability, core.OperationReserve, sameHolder) != core.InsertReservation {
		return reject(command, core.InvalidTransition(core.RejectionDescriptionFor(availability, sameHolder)))
	}

	return core.SuccessDecision(
		core.BuildBookReserved(
			command.TransactionID,
			command.BookID,
			command.PatronID,
			command.OccurredAt.Add(reservationWindow),
			command.OccurredAt,
		),
	)
}

func reject(command Command, rejection core.Rejection) core.DecisionResult {
	event := core.BuildReservingBookFailed(command.BookID.String(), rejection.Description, command.OccurredAt)

	return core.ErrorDecision(event, rejection)
}

// BuildEventFilter creates the filter for querying the circulation events of the book
// and the registration of the patron.
func BuildEventFilter(bookID uuid.UUID, patronID uuid.UUID) eventstore.Filter {
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
		OrMatching().
		AnyEventTypeOf(core.PatronRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("PatronID", patronID.String())).
		Finalize()
}
