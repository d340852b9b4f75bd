package core

import (
	"time"
)

// Status is the availability of a book at a given instant.
type Status int

const (
	Available Status = iota
	Reserved
	Borrowed
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case Reserved:
		return "Reserved"
	case Borrowed:
		return "Borrowed"
	default:
		return "Available"
	}
}

// Resolve determines the governing transaction of a book and its status at now.
//
// The governing transaction is the open transaction with a current window. Should more than one
// qualify, the most recently opened one governs. A current borrow window dominates a reservation
// window on the same record.
//
// The governing transaction is nil when the book is Available.
func Resolve(transactions Transactions, now time.Time) (*Transaction, Status) {
	var governing *Transaction

	for i := len(transactions) - 1; i >= 0; i-- {
		if transactions[i].IsOpen() && transactions[i].IsCurrent(now) {
			t := transactions[i]
			governing = &t

			break
		}
	}

	switch {
	case governing == nil:
		return nil, Available
	case governing.BorrowIsCurrent(now):
		return governing, Borrowed
	case governing.ReservationIsCurrent(now) && governing.BorrowedUntil == nil:
		return governing, Reserved
	default:
		return governing, Available
	}
}

// Availability is the per-call derived variant Available | Reserved{until} | Borrowed{until}.
// Until is the zero time for Available.
type Availability struct {
	Status        Status
	Until         time.Time
	HolderID      PatronIDString
	TransactionID TransactionIDString
}

// AvailabilityAt resolves the Availability of a book from its transactions.
func AvailabilityAt(transactions Transactions, now time.Time) Availability {
	governing, status := Resolve(transactions, now)

	availability := Availability{Status: status}
	if governing == nil || status == Available {
		return availability
	}

	availability.HolderID = governing.PatronID
	availability.TransactionID = governing.ID

	switch status {
	case Borrowed:
		availability.Until = *governing.BorrowedUntil
	case Reserved:
		availability.Until = *governing.ReservedUntil
	}

	return availability
}

// IsHeldBy reports whether the given patron holds the governing transaction.
func (a Availability) IsHeldBy(patronID PatronIDString) bool {
	return a.Status != Available && a.HolderID == patronID
}

// Operation is a hold-creating operation that goes through NextTransition.
type Operation int

const (
	OperationReserve Operation = iota
	OperationBorrow
)

// Transition is the write a hold-creating operation has to perform.
type Transition int

const (
	Reject Transition = iota
	InsertReservation
	InsertBorrow
	UpgradeToBorrow
)

// NextTransition is the explicit state-transition function for Reserve and Borrow.
//
//	Available             --reserve--> InsertReservation
//	Available             --borrow-->  InsertBorrow
//	Reserved(same holder) --borrow-->  UpgradeToBorrow
//	anything else                      Reject
func NextTransition(availability Availability, operation Operation, sameHolder bool) Transition {
	switch availability.Status {
	case Available:
		if operation == OperationBorrow {
			return InsertBorrow
		}

		return InsertReservation

	case Reserved:
		if operation == OperationBorrow && sameHolder {
			return UpgradeToBorrow
		}

		return Reject

	default:
		return Reject
	}
}

// RejectionDescriptionFor returns the verbatim reason for a rejected Reserve or Borrow.
func RejectionDescriptionFor(availability Availability, sameHolder bool) string {
	if availability.Status == Borrowed {
		if sameHolder {
			return DescriptionAlreadyBorrowedByYou
		}

		return DescriptionAlreadyBorrowedBySomeoneElse
	}

	if sameHolder {
		return DescriptionAlreadyReservedByThisCustomer
	}

	return DescriptionAlreadyReservedBySomeoneElse
}
