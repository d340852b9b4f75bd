package bookstatus

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

// BookStatus is the availability of a book resolved from its governing transaction.
// ReservedUntil is only set for Reserved, BorrowedUntil only for Borrowed.
type BookStatus struct {
	BookID         core.BookIDString
	Status         string
	ReservedUntil  *time.Time
	BorrowedUntil  *time.Time
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event that was used to build the projection.
func (r BookStatus) GetSequenceNumber() uint {
	return r.SequenceNumber
}
