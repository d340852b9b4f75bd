package core

import (
	"time"
)

// PatronNotifiedAboutAvailabilityEventType is the event type identifier.
const PatronNotifiedAboutAvailabilityEventType = "PatronNotifiedAboutAvailability"

// PatronNotifiedAboutAvailability marks a waitlist notification request as delivered.
type PatronNotifiedAboutAvailability struct {
	NotificationID NotificationIDString
	BookID         BookIDString
	PatronID       PatronIDString
	Channel        NotificationChannel
	OccurredAt     OccurredAtTS
}

// BuildPatronNotifiedAboutAvailability creates a new PatronNotifiedAboutAvailability event.
func BuildPatronNotifiedAboutAvailability(
	request NotificationRequest,
	channel NotificationChannel,
	occurredAt time.Time,
) PatronNotifiedAboutAvailability {

	event := PatronNotifiedAboutAvailability{
		NotificationID: request.ID,
		BookID:         request.BookID,
		PatronID:       request.PatronID,
		Channel:        channel,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e PatronNotifiedAboutAvailability) IsEventType() string {
	return PatronNotifiedAboutAvailabilityEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronNotifiedAboutAvailability) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PatronNotifiedAboutAvailability) IsErrorEvent() bool {
	return false
}
