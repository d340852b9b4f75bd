package core

import (
	"time"
)

// Transaction is the time-bounded record of a reservation and/or a borrow of one book by one patron.
// It is never stored; ProjectTransactions derives it from the book's event history.
type Transaction struct {
	ID            TransactionIDString
	BookID        BookIDString
	PatronID      PatronIDString
	ReservedUntil *time.Time
	BorrowedUntil *time.Time
	ReturnedAt    *time.Time
}

// IsOpen reports whether the transaction was not returned yet.
func (t Transaction) IsOpen() bool {
	return t.ReturnedAt == nil
}

// ReservationIsCurrent reports whether the reservation window is still running at now.
// A window is current while now is strictly before its end.
func (t Transaction) ReservationIsCurrent(now time.Time) bool {
	return t.ReservedUntil != nil && now.Before(*t.ReservedUntil)
}

// BorrowIsCurrent reports whether the borrow window is still running at now.
func (t Transaction) BorrowIsCurrent(now time.Time) bool {
	return t.BorrowedUntil != nil && now.Before(*t.BorrowedUntil)
}

// IsCurrent reports whether any window of the transaction is still running at now.
func (t Transaction) IsCurrent(now time.Time) bool {
	return t.ReservationIsCurrent(now) || t.BorrowIsCurrent(now)
}

// IsPureReservation reports whether the transaction is an open reservation that was never borrowed.
func (t Transaction) IsPureReservation() bool {
	return t.IsOpen() && t.ReservedUntil != nil && t.BorrowedUntil == nil
}

// Transactions is a slice of Transaction ordered by the time they were opened (oldest first).
type Transactions = []Transaction

// ProjectTransactions replays the transaction events of one book into its Transaction records.
//
//   - BookReserved inserts a record
//   - BookBorrowed inserts a record, or upgrades the existing one in place when it carries its TransactionID
//   - BookReturned sets ReturnedAt
//   - ReservationCanceled deletes the record
//
// Events for other books and failure events are ignored.
func ProjectTransactions(history DomainEvents, bookID BookIDString) Transactions {
	transactions := make(Transactions, 0)

	indexOf := func(transactionID TransactionIDString) int {
		for i := range transactions {
			if transactions[i].ID == transactionID {
				return i
			}
		}

		return -1
	}

	for _, event := range history {
		switch e := event.(type) {
		case BookReserved:
			if e.BookID != bookID {
				continue
			}

			reservedUntil := e.ReservedUntil
			transactions = append(transactions, Transaction{
				ID:            e.TransactionID,
				BookID:        e.BookID,
				PatronID:      e.PatronID,
				ReservedUntil: &reservedUntil,
			})

		case BookBorrowed:
			if e.BookID != bookID {
				continue
			}

			borrowedUntil := e.BorrowedUntil
			if i := indexOf(e.TransactionID); i >= 0 {
				transactions[i].BorrowedUntil = &borrowedUntil
				continue
			}

			transactions = append(transactions, Transaction{
				ID:            e.TransactionID,
				BookID:        e.BookID,
				PatronID:      e.PatronID,
				BorrowedUntil: &borrowedUntil,
			})

		case BookReturned:
			if e.BookID != bookID {
				continue
			}

			if i := indexOf(e.TransactionID); i >= 0 {
				returnedAt := e.OccurredAt
				transactions[i].ReturnedAt = &returnedAt
			}

		case ReservationCanceled:
			if e.BookID != bookID {
				continue
			}

			if i := indexOf(e.TransactionID); i >= 0 {
				transactions = append(transactions[:i], transactions[i+1:]...)
			}
		}
	}

	return transactions
}

// LatestOpenBorrow returns the most recently opened transaction that has a borrow window and was not returned.
// The borrow window does not need to be current: an overdue book can still be returned.
func LatestOpenBorrow(transactions Transactions) (Transaction, bool) {
	for i := len(transactions) - 1; i >= 0; i-- {
		if transactions[i].BorrowedUntil != nil && transactions[i].IsOpen() {
			return transactions[i], true
		}
	}

	return Transaction{}, false
}

// ActiveReservationOf returns the open and current pure reservation of the given patron.
func ActiveReservationOf(transactions Transactions, patronID PatronIDString, now time.Time) (Transaction, bool) {
	for i := len(transactions) - 1; i >= 0; i-- {
		t := transactions[i]
		if t.PatronID == patronID && t.IsPureReservation() && t.ReservationIsCurrent(now) {
			return t, true
		}
	}

	return Transaction{}, false
}
