package registerpatron

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Decide implements the business logic to determine whether a patron should be registered.
//
// Business Rules:
//
//	GIVEN: A patron with PatronID
//	WHEN: RegisterPatron command is received
//	THEN: PatronRegistered event is generated
//	ERROR: None (always succeeds)
//	IDEMPOTENCY: If the patron is already registered, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if _, registered := core.RegisteredPatron(history, command.PatronID.String()); registered {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildPatronRegistered(
			command.PatronID,
			command.Name,
			command.Email,
			command.Phone,
			command.PreferredNotificationMethod,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for querying the registration of the given patron.
func BuildEventFilter(patronID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.PatronRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("PatronID", patronID.String())).
		Finalize()
}
