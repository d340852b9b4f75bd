package core

import (
	"time"
)

// CancelingReservationFailedEventType is the event type identifier.
const CancelingReservationFailedEventType = "CancelingReservationFailed"

// CancelingReservationFailed represents when canceling a reservation fails due to a business rule violation.
type CancelingReservationFailed struct {
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildCancelingReservationFailed creates a new CancelingReservationFailed event.
func BuildCancelingReservationFailed(
	entityID string,
	failureInfo string,
	occurredAt time.Time,
) CancelingReservationFailed {

	event := CancelingReservationFailed{
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CancelingReservationFailed) IsEventType() string {
	return CancelingReservationFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e CancelingReservationFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e CancelingReservationFailed) IsErrorEvent() bool {
	return true
}
