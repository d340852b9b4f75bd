package core

import (
	"time"

	"github.com/google/uuid"
)

// ReservationCanceledEventType is the event type identifier.
const ReservationCanceledEventType = "ReservationCanceled"

// ReservationCanceled represents when a patron withdraws a reservation that was not borrowed yet.
type ReservationCanceled struct {
	TransactionID TransactionIDString
	BookID        BookIDString
	PatronID      PatronIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationCanceled creates a new ReservationCanceled event.
func BuildReservationCanceled(
	transactionID TransactionIDString,
	bookID uuid.UUID,
	patronID uuid.UUID,
	occurredAt time.Time,
) ReservationCanceled {

	event := ReservationCanceled{
		TransactionID: transactionID,
		BookID:        bookID.String(),
		PatronID:      patronID.String(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReservationCanceled) IsEventType() string {
	return ReservationCanceledEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationCanceled) IsErrorEvent() bool {
	return false
}
