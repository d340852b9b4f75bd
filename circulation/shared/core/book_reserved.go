package core

import (
	"time"

	"github.com/google/uuid"
)

// BookReservedEventType is the event type identifier.
const BookReservedEventType = "BookReserved"

// BookReserved represents when a patron places a time-bounded hold on an available book.
type BookReserved struct {
	TransactionID TransactionIDString
	BookID        BookIDString
	PatronID      PatronIDString
	ReservedUntil time.Time
	OccurredAt    OccurredAtTS
}

// BuildBookReserved creates a new BookReserved event.
func BuildBookReserved(
	transactionID uuid.UUID,
	bookID uuid.UUID,
	patronID uuid.UUID,
	reservedUntil time.Time,
	occurredAt time.Time,
) BookReserved {

	event := BookReserved{
		TransactionID: transactionID.String(),
		BookID:        bookID.String(),
		PatronID:      patronID.String(),
		ReservedUntil: ToOccurredAt(reservedUntil),
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookReserved) IsEventType() string {
	return BookReservedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReserved) IsErrorEvent() bool {
	return false
}
