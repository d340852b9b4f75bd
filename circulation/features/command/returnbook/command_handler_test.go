package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_ReturnThenSecondReturnIsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	bookID, patronID, txID := uuid.New(), uuid.New(), uuid.New()

	store := NewSeededStore(t,
		BookAdded(bookID, now.Add(-2*time.Hour)),
		Borrowed(txID, bookID, patronID, now.Add(time.Hour), now.Add(-time.Hour)),
	)
	handler := returnbook.NewCommandHandler(store)

	// act
	_, firstErr := handler.Handle(ctx, returnbook.BuildCommand(bookID, now))
	_, secondErr := handler.Handle(ctx, returnbook.BuildCommand(bookID, now.Add(time.Minute)))

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, core.ErrNotFound)
	assert.Equal(t, core.DescriptionNothingToReturn, core.DescriptionOf(secondErr))

	transactions := core.ProjectTransactions(AllEvents(ctx, t, store), bookID.String())
	require.Len(t, transactions, 1)
	assert.NotNil(t, transactions[0].ReturnedAt)

	_, status := core.Resolve(transactions, now.Add(time.Minute))
	assert.Equal(t, core.Available, status)
}
