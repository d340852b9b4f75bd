package bookstatus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/bookstatus"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func Test_QueryHandler_Handle(t *testing.T) {
	bookID, patronID := uuid.New(), uuid.New()
	txID := uuid.New()
	until := now.Add(time.Hour)

	testCases := []struct {
		name                  string
		given                 []core.DomainEvent
		expectedStatus        string
		expectedReservedUntil *time.Time
		expectedBorrowedUntil *time.Time
	}{
		{
			name:           "available",
			given:          []core.DomainEvent{BookAdded(bookID, now.Add(-time.Hour))},
			expectedStatus: "Available",
		},
		{
			name: "reserved",
			given: []core.DomainEvent{
				BookAdded(bookID, now.Add(-2*time.Hour)),
				Reserved(txID, bookID, patronID, until, now.Add(-time.Hour)),
			},
			expectedStatus:        "Reserved",
			expectedReservedUntil: &until,
		},
		{
			name: "borrowed after upgrade",
			given: []core.DomainEvent{
				BookAdded(bookID, now.Add(-2*time.Hour)),
				Reserved(txID, bookID, patronID, now.Add(30*time.Minute), now.Add(-time.Hour)),
				core.BuildBookBorrowedFromReservation(txID.String(), bookID, patronID, until, now.Add(-time.Minute)),
			},
			expectedStatus:        "Borrowed",
			expectedBorrowedUntil: &until,
		},
		{
			name: "reservation lapsed",
			given: []core.DomainEvent{
				BookAdded(bookID, now.Add(-2*time.Hour)),
				Reserved(txID, bookID, patronID, now, now.Add(-time.Hour)),
			},
			expectedStatus: "Available",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			store := NewSeededStore(t, tc.given...)
			handler := bookstatus.NewQueryHandler(store)

			// act
			result, err := handler.Handle(context.Background(), bookstatus.BuildQuery(bookID, now))

			// assert
			require.NoError(t, err)
			assert.Equal(t, bookID.String(), result.BookID)
			assert.Equal(t, tc.expectedStatus, result.Status)
			assertSameInstant(t, tc.expectedReservedUntil, result.ReservedUntil)
			assertSameInstant(t, tc.expectedBorrowedUntil, result.BorrowedUntil)
			assert.Equal(t, uint(len(tc.given)), result.GetSequenceNumber())
		})
	}
}

func Test_QueryHandler_Handle_BookNotFound(t *testing.T) {
	// setup
	bookID := uuid.New()
	store := NewSeededStore(t,
		BookAdded(bookID, now.Add(-2*time.Hour)),
		BookRemoved(bookID, now.Add(-time.Hour)),
	)

	// act
	_, err := bookstatus.NewQueryHandler(store).Handle(context.Background(), bookstatus.BuildQuery(bookID, now))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, core.DescriptionBookNotFound, core.DescriptionOf(err))
}

func assertSameInstant(t *testing.T, expected *time.Time, actual *time.Time) {
	t.Helper()

	if expected == nil {
		assert.Nil(t, actual)
		return
	}

	require.NotNil(t, actual)
	assert.True(t, expected.Equal(*actual), "expected %s, got %s", expected, actual)
}
