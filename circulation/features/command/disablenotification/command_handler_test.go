package disablenotification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/disablenotification"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_OnlyTouchesTheRequestOfThePatron(t *testing.T) {
	// setup
	ctx := context.Background()
	bookID, patronID, otherPatronID := uuid.New(), uuid.New(), uuid.New()

	store := NewSeededStore(t,
		NotificationRegistered(uuid.New(), bookID, patronID, now.Add(-2*time.Hour)),
		NotificationRegistered(uuid.New(), bookID, otherPatronID, now.Add(-time.Hour)),
	)
	handler := disablenotification.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, disablenotification.BuildCommand(bookID, patronID, now))

	// assert
	require.NoError(t, err)

	pending := core.PendingRequests(core.ProjectNotificationRequests(AllEvents(ctx, t, store), bookID.String()))
	require.Len(t, pending, 1)
	assert.Equal(t, otherPatronID.String(), pending[0].PatronID)
}
