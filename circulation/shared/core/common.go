package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// BookIDString represents a book identifier
type BookIDString = string

// PatronIDString represents a patron (customer) identifier
type PatronIDString = string

// TransactionIDString represents a transaction identifier
type TransactionIDString = string

// NotificationIDString represents a waitlist notification request identifier
type NotificationIDString = string

// ISBNString represents an ISBN identifier
type ISBNString = string

// EventTypeString represents the type of domain event
type EventTypeString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
