package disablenotification

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Decide implements the business logic to determine whether a notification request can be disabled.
//
// Business Rules:
//
//	GIVEN: A pending notification request of the patron for the book
//	WHEN: DisableNotification command is received
//	THEN: WaitlistNotificationDisabled event is generated, which removes the request
//	ERROR: "Notification not found" if there is no pending request
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	request, pending := core.PendingRequestOf(
		core.ProjectNotificationRequests(history, command.BookID.String()),
		command.PatronID.String(),
	)

	if !pending {
		rejection := core.NotFound(core.DescriptionNotificationNotFound)
		event := core.BuildDisablingNotificationFailed(command.BookID.String(), rejection.Description, command.OccurredAt)

		return core.ErrorDecision(event, rejection)
	}

	return core.SuccessDecision(
		core.BuildWaitlistNotificationDisabled(request.ID, command.BookID, command.PatronID, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for querying the waitlist events of this patron for the book.
func BuildEventFilter(bookID uuid.UUID, patronID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.WaitlistNotificationRegisteredEventType,
			core.WaitlistNotificationDisabledEventType,
			core.PatronNotifiedAboutAvailabilityEventType,
		).
		AndAllPredicatesOf(
			eventstore.P("BookID", bookID.String()),
			eventstore.P("PatronID", patronID.String()),
		).
		Finalize()
}
