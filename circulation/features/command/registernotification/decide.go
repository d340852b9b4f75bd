package registernotification

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Decide implements the business logic to determine whether a notification request can be registered.
//
// Business Rules:
//
//	GIVEN: A book in circulation and a registered patron
//	WHEN: RegisterNotification command is received
//	THEN: WaitlistNotificationRegistered event is generated
//	ERROR: "Book not found" if the book is not in circulation
//	ERROR: "Customer not found" if the patron is not registered
//	ERROR: "Customer already has an active notification." if a pending request of the patron exists
//	ERROR: "You already have an active reservation on this book." if the patron holds the reservation
//	ERROR: "You already have an active booking on this book." if the patron holds the borrow
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()
	patronID := command.PatronID.String()

	if !core.BookIsInCirculation(history, bookID) {
		return reject(command, core.NotFound(core.DescriptionBookNotFound))
	}

	if _, registered := core.RegisteredPatron(history, patronID); !registered {
		return reject(command, core.NotFound(core.DescriptionPatronNotFound))
	}

	if _, pending := core.PendingRequestOf(core.ProjectNotificationRequests(history, bookID), patronID); pending {
		return reject(command, core.InvalidTransition(core.DescriptionActiveNotificationExists))
	}

	availability := core.AvailabilityAt(core.ProjectTransactions(history, bookID), command.OccurredAt)
	if availability.IsHeldBy(patronID) {
		switch availability.Status {
		case core.Reserved:
			return reject(command, core.InvalidTransition(core.DescriptionHoldsActiveReservation))
		case core.Borrowed:
			return reject(command, core.InvalidTransition(core.DescriptionHoldsActiveBooking))
		}
	}

	return core.SuccessDecision(
		core.BuildWaitlistNotificationRegistered(
			command.NotificationID,
			command.BookID,
			command.PatronID,
			command.OccurredAt,
		),
	)
}

func reject(command Command, rejection core.Rejection) core.DecisionResult {
	event := core.BuildRegisteringNotificationFailed(command.BookID.String(), rejection.Description, command.OccurredAt)

	return core.ErrorDecision(event, rejection)
}

// BuildEventFilter creates the filter for querying the circulation events of the book,
// the waitlist events of this patron for the book, and the registration of the patron.
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
		AnyEventTypeOf(
			core.WaitlistNotificationRegisteredEventType,
			core.WaitlistNotificationDisabledEventType,
			core.PatronNotifiedAboutAvailabilityEventType,
		).
		AndAllPredicatesOf(
			eventstore.P("BookID", bookID.String()),
			eventstore.P("PatronID", patronID.String()),
		).
		OrMatching().
		AnyEventTypeOf(core.PatronRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("PatronID", patronID.String())).
		Finalize()
}
