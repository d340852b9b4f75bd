package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func Test_Decide_Success_CancelsCurrentReservation(t *testing.T) {
	// arrange
	bookID, patronID, txID := uuid.New(), uuid.New(), uuid.New()

	history := core.DomainEvents{
		BookAdded(bookID, now.Add(-48*time.Hour)),
		PatronRegistered(patronID, now.Add(-48*time.Hour)),
		Reserved(txID, bookID, patronID, now.Add(time.Hour), now.Add(-time.Hour)),
	}

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand(bookID, patronID, now))

	// assert
	require.NoError(t, result.HasError())

	canceled, ok := result.Event.(core.ReservationCanceled)
	require.True(t, ok)
	assert.Equal(t, txID.String(), canceled.TransactionID)
	assert.Empty(t, core.ProjectTransactions(append(history, canceled), bookID.String()), "the transaction is deleted")
}

func Test_Decide_Rejected(t *testing.T) {
	bookID, patronID, otherPatronID, txID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	catalog := func(events ...core.DomainEvent) core.DomainEvents {
		return append(core.DomainEvents{
			BookAdded(bookID, now.Add(-48*time.Hour)),
			PatronRegistered(patronID, now.Add(-48*time.Hour)),
		}, events...)
	}

	testCases := []struct {
		name                string
		history             core.DomainEvents
		expectedDescription string
	}{
		{
			name:                "book unknown",
			history:             core.DomainEvents{PatronRegistered(patronID, now.Add(-time.Hour))},
			expectedDescription: core.DescriptionBookNotFound,
		},
		{
			name:                "patron not registered",
			history:             core.DomainEvents{BookAdded(bookID, now.Add(-time.Hour))},
			expectedDescription: core.DescriptionPatronNotFound,
		},
		{
			name:                "no reservation",
			history:             catalog(),
			expectedDescription: core.DescriptionNoActiveReservation,
		},
		{
			name:                "reservation of someone else",
			history:             catalog(Reserved(txID, bookID, otherPatronID, now.Add(time.Hour), now.Add(-time.Hour))),
			expectedDescription: core.DescriptionNoActiveReservation,
		},
		{
			name:                "reservation lapsed",
			history:             catalog(Reserved(txID, bookID, patronID, now.Add(-time.Minute), now.Add(-time.Hour))),
			expectedDescription: core.DescriptionNoActiveReservation,
		},
		{
			name: "reservation already upgraded to a borrow",
			history: catalog(
				Reserved(txID, bookID, patronID, now.Add(time.Hour), now.Add(-time.Hour)),
				core.BuildBookBorrowedFromReservation(txID.String(), bookID, patronID, now.Add(24*time.Hour), now.Add(-time.Minute)),
			),
			expectedDescription: core.DescriptionNoActiveReservation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := cancelreservation.Decide(tc.history, cancelreservation.BuildCommand(bookID, patronID, now))

			// assert
			require.Error(t, result.HasError())
			assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
			assert.Equal(t, tc.expectedDescription, core.DescriptionOf(result.HasError()))
			assert.IsType(t, core.CancelingReservationFailed{}, result.Event)
		})
	}
}
