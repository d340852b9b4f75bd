package core

// Descriptions are part of the observable contract of the engine and are returned verbatim to callers.
const (
	DescriptionBookNotFound   = "Book not found"
	DescriptionPatronNotFound = "Customer not found"

	DescriptionAlreadyReservedByThisCustomer = "This book is already reserved by this customer. They can borrow it."
	DescriptionAlreadyReservedBySomeoneElse  = "This book is already reserved by someone else."
	DescriptionAlreadyBorrowedByYou          = "This book is already borrowed by you. You cannot borrow it."
	DescriptionAlreadyBorrowedBySomeoneElse  = "This book is already borrowed by someone else."
	DescriptionCurrentlyUnavailable          = "This book is currently unavailable, please retry."

	DescriptionNothingToReturn     = "No borrowed record found for this book."
	DescriptionNoActiveReservation = "No active reservation found for this book."

	DescriptionActiveNotificationExists = "Customer already has an active notification."
	DescriptionHoldsActiveReservation   = "You already have an active reservation on this book."
	DescriptionHoldsActiveBooking       = "You already have an active booking on this book."
	DescriptionNotificationNotFound     = "Notification not found"

	DescriptionBookReserved         = "Book successfully reserved"
	DescriptionBookBorrowed         = "Book successfully borrowed"
	DescriptionBookReturned         = "Book successfully returned"
	DescriptionReservationCancelled = "Reservation successfully cancelled"
	DescriptionNotificationSaved    = "Notification successfully saved"
	DescriptionNotificationDisabled = "Notification successfully disabled"
	DescriptionBookAdded            = "Book successfully added"
	DescriptionBookRemoved          = "Book successfully removed"
	DescriptionPatronRegistered     = "Customer successfully registered"

	DescriptionGenericFailure = "Something went wrong, please try again later."
)
