package core

import (
	"time"
)

// ReservingBookFailedEventType is the event type identifier.
const ReservingBookFailedEventType = "ReservingBookFailed"

// ReservingBookFailed represents when reserving a book fails due to a business rule violation.
type ReservingBookFailed struct {
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildReservingBookFailed creates a new ReservingBookFailed event.
func BuildReservingBookFailed(
	entityID string,
	failureInfo string,
	occurredAt time.Time,
) ReservingBookFailed {

	event := ReservingBookFailed{
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReservingBookFailed) IsEventType() string {
	return ReservingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e ReservingBookFailed) IsErrorEvent() bool {
	return true
}
