package borrowbook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_UpgradesReservation(t *testing.T) {
	// setup
	ctx := context.Background()
	bookID, patronID, reservationTxID := uuid.New(), uuid.New(), uuid.New()

	store := NewSeededStore(t, append(givenCatalog(bookID, patronID),
		Reserved(reservationTxID, bookID, patronID, now.Add(time.Hour), now.Add(-time.Hour)),
	)...)
	handler := borrowbook.NewCommandHandler(store, borrowbook.WithBorrowWindow(window))

	// act
	result, err := handler.Handle(ctx, borrowbook.BuildCommand(bookID, patronID, now))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	borrowed := EventsOfType(ctx, t, store, core.BookBorrowedEventType)
	require.Len(t, borrowed, 1)
	assert.Equal(t, reservationTxID.String(), borrowed[0].(core.BookBorrowed).TransactionID)
	assert.True(t, borrowed[0].(core.BookBorrowed).BorrowedUntil.Equal(now.Add(window)))
}

func Test_CommandHandler_Handle_ConcurrentBorrowsHaveExactlyOneWinner(t *testing.T) {
	// setup
	ctx := context.Background()
	bookID, patronA, patronB := uuid.New(), uuid.New(), uuid.New()

	store := NewSeededStore(t, givenCatalog(bookID, patronA, patronB)...)
	handler := borrowbook.NewCommandHandler(store)

	// act
	var wg sync.WaitGroup
	errs := make([]error, 2)
	start := make(chan struct{})

	for i, patronID := range []uuid.UUID{patronA, patronB} {
		wg.Add(1)

		go func() {
			defer wg.Done()
			<-start

			_, errs[i] = handler.Handle(ctx, borrowbook.BuildCommand(bookID, patronID, now))
		}()
	}

	close(start)
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, core.ErrInvalidTransition)
	}

	assert.Equal(t, 1, succeeded, "exactly one borrow must win")
	assert.Len(t, EventsOfType(ctx, t, store, core.BookBorrowedEventType), 1)

	transactions := core.ProjectTransactions(AllEvents(ctx, t, store), bookID.String())
	_, status := core.Resolve(transactions, now)
	assert.Equal(t, core.Borrowed, status)
}

func Test_CommandHandler_Handle_PatronNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	bookID := uuid.New()

	store := NewSeededStore(t, givenCatalog(bookID)...)
	handler := borrowbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, borrowbook.BuildCommand(bookID, uuid.New(), now))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, core.DescriptionPatronNotFound, core.DescriptionOf(err))
	assert.Len(t, EventsOfType(ctx, t, store, core.BorrowingBookFailedEventType), 1)
}
