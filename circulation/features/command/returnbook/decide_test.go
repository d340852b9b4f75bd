package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func Test_Decide_Success_ClosesOpenBorrow(t *testing.T) {
	// arrange
	bookID, patronID, txID := uuid.New(), uuid.New(), uuid.New()

	history := core.DomainEvents{
		BookAdded(bookID, now.Add(-48*time.Hour)),
		Borrowed(txID, bookID, patronID, now.Add(time.Hour), now.Add(-time.Hour)),
	}

	// act
	result := returnbook.Decide(history, returnbook.BuildCommand(bookID, now))

	// assert
	require.NoError(t, result.HasError())

	returned, ok := result.Event.(core.BookReturned)
	require.True(t, ok)
	assert.Equal(t, txID.String(), returned.TransactionID)
	assert.Equal(t, patronID.String(), returned.PatronID)
}

func Test_Decide_Success_OverdueBorrow(t *testing.T) {
	// arrange
	bookID, patronID, txID := uuid.New(), uuid.New(), uuid.New()

	history := core.DomainEvents{
		BookAdded(bookID, now.Add(-48*time.Hour)),
		Borrowed(txID, bookID, patronID, now.Add(-time.Hour), now.Add(-24*time.Hour)),
	}

	// act
	result := returnbook.Decide(history, returnbook.BuildCommand(bookID, now))

	// assert
	require.NoError(t, result.HasError())
	assert.Equal(t, txID.String(), result.Event.(core.BookReturned).TransactionID)
}

func Test_Decide_Success_BookRemovedWhileBorrowed(t *testing.T) {
	// arrange
	bookID, patronID, txID := uuid.New(), uuid.New(), uuid.New()

	history := core.DomainEvents{
		BookAdded(bookID, now.Add(-48*time.Hour)),
		Borrowed(txID, bookID, patronID, now.Add(time.Hour), now.Add(-2*time.Hour)),
		BookRemoved(bookID, now.Add(-time.Hour)),
	}

	// act
	result := returnbook.Decide(history, returnbook.BuildCommand(bookID, now))

	// assert
	require.NoError(t, result.HasError())
	assert.IsType(t, core.BookReturned{}, result.Event)
}

func Test_Decide_Rejected(t *testing.T) {
	bookID, patronID, txID := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		name                string
		history             core.DomainEvents
		expectedDescription string
	}{
		{
			name:                "book unknown",
			history:             core.DomainEvents{},
			expectedDescription: core.DescriptionBookNotFound,
		},
		{
			name:                "never borrowed",
			history:             core.DomainEvents{BookAdded(bookID, now.Add(-time.Hour))},
			expectedDescription: core.DescriptionNothingToReturn,
		},
		{
			name: "only reserved",
			history: core.DomainEvents{
				BookAdded(bookID, now.Add(-2*time.Hour)),
				Reserved(txID, bookID, patronID, now.Add(time.Hour), now.Add(-time.Hour)),
			},
			expectedDescription: core.DescriptionNothingToReturn,
		},
		{
			name: "already returned",
			history: core.DomainEvents{
				BookAdded(bookID, now.Add(-3*time.Hour)),
				Borrowed(txID, bookID, patronID, now.Add(time.Hour), now.Add(-2*time.Hour)),
				Returned(txID, bookID, patronID, now.Add(-time.Hour)),
			},
			expectedDescription: core.DescriptionNothingToReturn,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := returnbook.Decide(tc.history, returnbook.BuildCommand(bookID, now))

			// assert
			require.Error(t, result.HasError())
			assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
			assert.Equal(t, tc.expectedDescription, core.DescriptionOf(result.HasError()))
			assert.IsType(t, core.ReturningBookFailed{}, result.Event)
		})
	}
}
