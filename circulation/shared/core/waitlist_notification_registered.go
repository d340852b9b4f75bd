package core

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistNotificationRegisteredEventType is the event type identifier.
const WaitlistNotificationRegisteredEventType = "WaitlistNotificationRegistered"

// WaitlistNotificationRegistered represents when a patron asks to be notified once a book becomes available.
type WaitlistNotificationRegistered struct {
	NotificationID NotificationIDString
	BookID         BookIDString
	PatronID       PatronIDString
	OccurredAt     OccurredAtTS
}

// BuildWaitlistNotificationRegistered creates a new WaitlistNotificationRegistered event.
func BuildWaitlistNotificationRegistered(
	notificationID uuid.UUID,
	bookID uuid.UUID,
	patronID uuid.UUID,
	occurredAt time.Time,
) WaitlistNotificationRegistered {

	event := WaitlistNotificationRegistered{
		NotificationID: notificationID.String(),
		BookID:         bookID.String(),
		PatronID:       patronID.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e WaitlistNotificationRegistered) IsEventType() string {
	return WaitlistNotificationRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e WaitlistNotificationRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e WaitlistNotificationRegistered) IsErrorEvent() bool {
	return false
}
