package core

import (
	"time"
)

// RegisteringNotificationFailedEventType is the event type identifier.
const RegisteringNotificationFailedEventType = "RegisteringNotificationFailed"

// RegisteringNotificationFailed represents when registering a waitlist notification fails due to a business rule violation.
type RegisteringNotificationFailed struct {
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRegisteringNotificationFailed creates a new RegisteringNotificationFailed event.
func BuildRegisteringNotificationFailed(
	entityID string,
	failureInfo string,
	occurredAt time.Time,
) RegisteringNotificationFailed {

	event := RegisteringNotificationFailed{
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RegisteringNotificationFailed) IsEventType() string {
	return RegisteringNotificationFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RegisteringNotificationFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e RegisteringNotificationFailed) IsErrorEvent() bool {
	return true
}
