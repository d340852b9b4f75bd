package core

import (
	"time"
)

// DisablingNotificationFailedEventType is the event type identifier.
const DisablingNotificationFailedEventType = "DisablingNotificationFailed"

// DisablingNotificationFailed represents when disabling a waitlist notification fails due to a business rule violation.
type DisablingNotificationFailed struct {
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildDisablingNotificationFailed creates a new DisablingNotificationFailed event.
func BuildDisablingNotificationFailed(
	entityID string,
	failureInfo string,
	occurredAt time.Time,
) DisablingNotificationFailed {

	event := DisablingNotificationFailed{
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e DisablingNotificationFailed) IsEventType() string {
	return DisablingNotificationFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e DisablingNotificationFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e DisablingNotificationFailed) IsErrorEvent() bool {
	return true
}
