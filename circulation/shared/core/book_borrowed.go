package core

import (
	"time"

	"github.com/google/uuid"
)

// BookBorrowedEventType is the event type identifier.
const BookBorrowedEventType = "BookBorrowed"

// BookBorrowed represents when a patron borrows a book.
//
// With UpgradedReservation set, the event upgrades the patron's own reservation in place:
// TransactionID then refers to the existing reservation transaction.
type BookBorrowed struct {
	TransactionID       TransactionIDString
	BookID              BookIDString
	PatronID            PatronIDString
	BorrowedUntil       time.Time
	UpgradedReservation bool
	OccurredAt          OccurredAtTS
}

// BuildBookBorrowed creates a new BookBorrowed event for a book that was available.
func BuildBookBorrowed(
	transactionID uuid.UUID,
	bookID uuid.UUID,
	patronID uuid.UUID,
	borrowedUntil time.Time,
	occurredAt time.Time,
) BookBorrowed {

	return BookBorrowed{
		TransactionID: transactionID.String(),
		BookID:        bookID.String(),
		PatronID:      patronID.String(),
		BorrowedUntil: ToOccurredAt(borrowedUntil),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// BuildBookBorrowedFromReservation creates a BookBorrowed event that upgrades an existing reservation.
func BuildBookBorrowedFromReservation(
	reservationTransactionID TransactionIDString,
	bookID uuid.UUID,
	patronID uuid.UUID,
	borrowedUntil time.Time,
	occurredAt time.Time,
) BookBorrowed {

	return BookBorrowed{
		TransactionID:       reservationTransactionID,
		BookID:              bookID.String(),
		PatronID:            patronID.String(),
		BorrowedUntil:       ToOccurredAt(borrowedUntil),
		UpgradedReservation: true,
		OccurredAt:          ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookBorrowed) IsEventType() string {
	return BookBorrowedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookBorrowed) IsErrorEvent() bool {
	return false
}
