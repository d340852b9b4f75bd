package core

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistNotificationDisabledEventType is the event type identifier.
const WaitlistNotificationDisabledEventType = "WaitlistNotificationDisabled"

// WaitlistNotificationDisabled represents when a patron withdraws a pending notification request.
type WaitlistNotificationDisabled struct {
	NotificationID NotificationIDString
	BookID         BookIDString
	PatronID       PatronIDString
	OccurredAt     OccurredAtTS
}

// BuildWaitlistNotificationDisabled creates a new WaitlistNotificationDisabled event.
func BuildWaitlistNotificationDisabled(
	notificationID NotificationIDString,
	bookID uuid.UUID,
	patronID uuid.UUID,
	occurredAt time.Time,
) WaitlistNotificationDisabled {

	event := WaitlistNotificationDisabled{
		NotificationID: notificationID,
		BookID:         bookID.String(),
		PatronID:       patronID.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e WaitlistNotificationDisabled) IsEventType() string {
	return WaitlistNotificationDisabledEventType
}

// HasOccurredAt returns when this event occurred.
func (e WaitlistNotificationDisabled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e WaitlistNotificationDisabled) IsErrorEvent() bool {
	return false
}
