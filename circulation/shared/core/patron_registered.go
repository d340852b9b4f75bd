package core

import (
	"time"

	"github.com/google/uuid"
)

// PatronRegisteredEventType is the event type identifier.
const PatronRegisteredEventType = "PatronRegistered"

// NotificationChannel is the preferred way to reach a patron.
type NotificationChannel = string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelPhone NotificationChannel = "phone"
)

// PatronRegistered represents when a new patron is registered in the library system.
type PatronRegistered struct {
	PatronID                    PatronIDString
	Name                        string
	Email                       string
	Phone                       string
	PreferredNotificationMethod NotificationChannel
	OccurredAt                  OccurredAtTS
}

// BuildPatronRegistered creates a new PatronRegistered event.
func BuildPatronRegistered(
	patronID uuid.UUID,
	name string,
	email string,
	phone string,
	preferredNotificationMethod NotificationChannel,
	occurredAt time.Time,
) PatronRegistered {

	event := PatronRegistered{
		PatronID:                    patronID.String(),
		Name:                        name,
		Email:                       email,
		Phone:                       phone,
		PreferredNotificationMethod: preferredNotificationMethod,
		OccurredAt:                  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e PatronRegistered) IsEventType() string {
	return PatronRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PatronRegistered) IsErrorEvent() bool {
	return false
}

// ContactAddress returns the email address or phone number matching the preferred channel.
func (e PatronRegistered) ContactAddress() string {
	if e.PreferredNotificationMethod == ChannelPhone {
		return e.Phone
	}

	return e.Email
}
