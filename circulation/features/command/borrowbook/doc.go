// Package borrowbook implements the Borrow Book use case.
//
// Borrowing either opens a new transaction on an available book or upgrades the patron's
// own current reservation in place, keeping the reservation's TransactionID.
package borrowbook
