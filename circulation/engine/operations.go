package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/addbookcopy"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/disablenotification"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registernotification"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/removebookcopy"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/bookstatus"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
)

// BookCopy is the catalog data of a book copy entering circulation.
type BookCopy struct {
	BookID  uuid.UUID
	ISBN    string
	Title   string
	Authors string
}

// Patron is the registration data of a patron.
type Patron struct {
	PatronID                    uuid.UUID
	Name                        string
	Email                       string
	Phone                       string
	PreferredNotificationMethod core.NotificationChannel
}

// Reserve places a reservation of the book for the patron.
func (e *Engine) Reserve(ctx context.Context, bookID, patronID uuid.UUID) Result[Empty] {
	_, err := e.reserveBook.Handle(ctx, reservebook.BuildCommand(bookID, patronID, e.clock()))

	return resultOf(err, core.DescriptionBookReserved)
}

// Borrow lends the book to the patron, upgrading the patron's own reservation if there is one.
func (e *Engine) Borrow(ctx context.Context, bookID, patronID uuid.UUID) Result[Empty] {
	_, err := e.borrowBook.Handle(ctx, borrowbook.BuildCommand(bookID, patronID, e.clock()))

	return resultOf(err, core.DescriptionBookBorrowed)
}

// Return closes the open borrow of the book and starts notifying the waiting patrons.
func (e *Engine) Return(ctx context.Context, bookID uuid.UUID) Result[Empty] {
	_, err := e.returnBook.Handle(ctx, returnbook.BuildCommand(bookID, e.clock()))
	if err == nil {
		e.notifyWaiters(ctx, bookID)
	}

	return resultOf(err, core.DescriptionBookReturned)
}

// CancelReservation withdraws the patron's current reservation and starts notifying the waiting patrons.
func (e *Engine) CancelReservation(ctx context.Context, bookID, patronID uuid.UUID) Result[Empty] {
	_, err := e.cancelReservation.Handle(ctx, cancelreservation.BuildCommand(bookID, patronID, e.clock()))
	if err == nil {
		e.notifyWaiters(ctx, bookID)
	}

	return resultOf(err, core.DescriptionReservationCancelled)
}

// RegisterNotification asks for a notification when the book becomes available.
func (e *Engine) RegisterNotification(ctx context.Context, bookID, patronID uuid.UUID) Result[Empty] {
	_, err := e.registerNotification.Handle(ctx, registernotification.BuildCommand(bookID, patronID, e.clock()))

	return resultOf(err, core.DescriptionNotificationSaved)
}

// DisableNotification withdraws the patron's pending notification request for the book.
func (e *Engine) DisableNotification(ctx context.Context, bookID, patronID uuid.UUID) Result[Empty] {
	_, err := e.disableNotification.Handle(ctx, disablenotification.BuildCommand(bookID, patronID, e.clock()))

	return resultOf(err, core.DescriptionNotificationDisabled)
}

// GetStatus resolves the availability of the book now.
func (e *Engine) GetStatus(ctx context.Context, bookID uuid.UUID) Result[bookstatus.BookStatus] {
	status, err := e.bookStatus.Handle(ctx, bookstatus.BuildQuery(bookID, e.clock()))
	if err != nil {
		return failed[bookstatus.BookStatus](err)
	}

	return succeeded(status, "")
}

// AddBookCopy puts a book copy into circulation. Adding a copy that is in circulation already succeeds.
func (e *Engine) AddBookCopy(ctx context.Context, book BookCopy) Result[Empty] {
	_, err := e.addBookCopy.Handle(ctx,
		addbookcopy.BuildCommand(book.BookID, book.ISBN, book.Title, book.Authors, e.clock()))

	return resultOf(err, core.DescriptionBookAdded)
}

// RemoveBookCopy takes a book copy out of circulation.
func (e *Engine) RemoveBookCopy(ctx context.Context, bookID uuid.UUID) Result[Empty] {
	_, err := e.removeBookCopy.Handle(ctx, removebookcopy.BuildCommand(bookID, e.clock()))

	return resultOf(err, core.DescriptionBookRemoved)
}

// RegisterPatron registers a patron. Registering a known patron again succeeds.
func (e *Engine) RegisterPatron(ctx context.Context, patron Patron) Result[Empty] {
	_, err := e.registerPatron.Handle(ctx, registerpatron.BuildCommand(
		patron.PatronID,
		patron.Name,
		patron.Email,
		patron.Phone,
		patron.PreferredNotificationMethod,
		e.clock(),
	))

	return resultOf(err, core.DescriptionPatronRegistered)
}

// notifyWaiters starts a notifier run for the freed book and returns immediately.
// The run is detached from the caller's cancellation, so an ended request does not
// cut it short. Its failures are logged only.
func (e *Engine) notifyWaiters(ctx context.Context, bookID uuid.UUID) {
	detached := context.WithoutCancel(ctx)

	e.notifications.Add(1)

	go func() {
		defer e.notifications.Done()

		if _, err := e.notifier.NotifyWaiters(detached, bookID); err != nil {
			e.logger.WarnContext(detached, "notifying waiters failed",
				"book_id", bookID.String(),
				shell.LogAttrError, err.Error(),
			)
		}
	}()
}

// WaitForNotifications blocks until all notifier runs started so far have finished,
// or until ctx ends.
func (e *Engine) WaitForNotifications(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		e.notifications.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
