package core

import (
	"time"

	"github.com/google/uuid"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a borrowed book is physically returned to the library.
// OccurredAt is the ReturnedAt timestamp of the closed transaction.
type BookReturned struct {
	TransactionID TransactionIDString
	BookID        BookIDString
	PatronID      PatronIDString
	OccurredAt    OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	transactionID TransactionIDString,
	bookID uuid.UUID,
	patronID PatronIDString,
	occurredAt time.Time,
) BookReturned {

	event := BookReturned{
		TransactionID: transactionID,
		BookID:        bookID.String(),
		PatronID:      patronID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}
