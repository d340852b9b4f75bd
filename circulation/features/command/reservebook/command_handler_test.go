package reservebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bookID, patronID := uuid.New(), uuid.New()

	store := NewSeededStore(t,
		BookAdded(bookID, now.Add(-time.Hour)),
		PatronRegistered(patronID, now.Add(-time.Hour)),
	)
	handler := reservebook.NewCommandHandler(store, reservebook.WithReservationWindow(window))

	// act
	result, err := handler.Handle(ctx, reservebook.BuildCommand(bookID, patronID, now))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RetryAttempts)

	reserved := EventsOfType(ctx, t, store, core.BookReservedEventType)
	require.Len(t, reserved, 1)
	assert.True(t, reserved[0].(core.BookReserved).ReservedUntil.Equal(now.Add(window)))
}

func Test_CommandHandler_Handle_UsesDefaultReservationWindow(t *testing.T) {
	// setup
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bookID, patronID := uuid.New(), uuid.New()

	store := NewSeededStore(t,
		BookAdded(bookID, now.Add(-time.Hour)),
		PatronRegistered(patronID, now.Add(-time.Hour)),
	)
	handler := reservebook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, reservebook.BuildCommand(bookID, patronID, now))

	// assert
	require.NoError(t, err)

	reserved := EventsOfType(ctx, t, store, core.BookReservedEventType)
	require.Len(t, reserved, 1)
	assert.True(t, reserved[0].(core.BookReserved).ReservedUntil.Equal(now.Add(reservebook.DefaultReservationWindow)))
}

func Test_CommandHandler_Handle_RejectedTwiceForSecondReservation(t *testing.T) {
	// setup
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bookID, patronID, otherPatronID := uuid.New(), uuid.New(), uuid.New()

	store := NewSeededStore(t,
		BookAdded(bookID, now.Add(-time.Hour)),
		PatronRegistered(patronID, now.Add(-time.Hour)),
		PatronRegistered(otherPatronID, now.Add(-time.Hour)),
	)
	handler := reservebook.NewCommandHandler(store)

	// arrange
	_, err := handler.Handle(ctx, reservebook.BuildCommand(bookID, patronID, now))
	require.NoError(t, err)

	// act
	_, errSame := handler.Handle(ctx, reservebook.BuildCommand(bookID, patronID, now.Add(time.Minute)))
	_, errOther := handler.Handle(ctx, reservebook.BuildCommand(bookID, otherPatronID, now.Add(time.Minute)))

	// assert
	assert.ErrorIs(t, errSame, core.ErrInvalidTransition)
	assert.Equal(t, core.DescriptionAlreadyReservedByThisCustomer, core.DescriptionOf(errSame))
	assert.ErrorIs(t, errOther, core.ErrInvalidTransition)
	assert.Equal(t, core.DescriptionAlreadyReservedBySomeoneElse, core.DescriptionOf(errOther))

	assert.Len(t, EventsOfType(ctx, t, store, core.BookReservedEventType), 1)
	assert.Len(t, EventsOfType(ctx, t, store, core.ReservingBookFailedEventType), 2)
}

func Test_CommandHandler_Handle_BookNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	patronID := uuid.New()

	store := NewSeededStore(t, PatronRegistered(patronID, time.Now().Add(-time.Hour)))
	handler := reservebook.NewCommandHandler(store, reservebook.WithRetryOptions(shell.WithMaxAttempts(1)))

	// act
	result, err := handler.Handle(ctx, reservebook.BuildCommand(uuid.New(), patronID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, core.DescriptionBookNotFound, core.DescriptionOf(err))
	assert.Equal(t, 1, result.RetryAttempts)
}

func Test_CommandHandler_Handle_CanceledContext(t *testing.T) {
	// setup
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handler := reservebook.NewCommandHandler(NewSeededStore(t))

	// act
	_, err := handler.Handle(ctx, reservebook.BuildCommand(uuid.New(), uuid.New(), time.Now()))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
