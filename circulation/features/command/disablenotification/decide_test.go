package disablenotification_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/disablenotification"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func Test_Decide_Success_DisablesPendingRequest(t *testing.T) {
	// arrange
	bookID, patronID, notificationID := uuid.New(), uuid.New(), uuid.New()

	history := core.DomainEvents{
		NotificationRegistered(notificationID, bookID, patronID, now.Add(-time.Hour)),
	}

	// act
	result := disablenotification.Decide(history, disablenotification.BuildCommand(bookID, patronID, now))

	// assert
	require.NoError(t, result.HasError())

	disabled, ok := result.Event.(core.WaitlistNotificationDisabled)
	require.True(t, ok)
	assert.Equal(t, notificationID.String(), disabled.NotificationID)
	assert.Empty(t, core.ProjectNotificationRequests(append(history, disabled), bookID.String()))
}

func Test_Decide_Rejected_NotificationNotFound(t *testing.T) {
	bookID, patronID, notificationID := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		name    string
		history core.DomainEvents
	}{
		{name: "never registered", history: core.DomainEvents{}},
		{
			name: "already disabled",
			history: core.DomainEvents{
				NotificationRegistered(notificationID, bookID, patronID, now.Add(-2*time.Hour)),
				NotificationDisabled(notificationID, bookID, patronID, now.Add(-time.Hour)),
			},
		},
		{
			name: "already delivered",
			history: core.DomainEvents{
				NotificationRegistered(notificationID, bookID, patronID, now.Add(-2*time.Hour)),
				PatronNotified(notificationID, bookID, patronID, now.Add(-time.Hour)),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := disablenotification.Decide(tc.history, disablenotification.BuildCommand(bookID, patronID, now))

			// assert
			require.Error(t, result.HasError())
			assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
			assert.Equal(t, core.DescriptionNotificationNotFound, core.DescriptionOf(result.HasError()))
			assert.IsType(t, core.DisablingNotificationFailed{}, result.Event)
		})
	}
}
