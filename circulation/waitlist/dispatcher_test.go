package waitlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/waitlist"
	"github.com/AntonStoeckl/library-circulation-go/testutil/testdoubles"
)

func Test_ChannelRouter_UnknownChannel(t *testing.T) {
	router := waitlist.NewChannelRouter(newRecordingDispatcher(), newRecordingDispatcher())

	err := router.Dispatch(context.Background(), waitlist.Message{Channel: "carrier-pigeon"})

	assert.ErrorIs(t, err, waitlist.ErrNoDispatcherForChannel)
}

func Test_LogDispatcher_Dispatch(t *testing.T) {
	logger := testdoubles.NewContextualLoggerSpy()

	err := waitlist.NewLogDispatcher(logger).Dispatch(context.Background(), waitlist.Message{
		PatronName: "Jane Doe",
		BookTitle:  "Learning Domain-Driven Design",
		Channel:    core.ChannelEmail,
	})

	require.NoError(t, err)
	assert.True(t, logger.HasLog("info", "availability notification dispatched"))
}

func Test_Message_Text(t *testing.T) {
	assert.Equal(t,
		`Dear Jane Doe, "Learning Domain-Driven Design" is available again.`,
		waitlist.Message{PatronName: "Jane Doe", BookTitle: "Learning Domain-Driven Design"}.Text(),
	)
	assert.Equal(t,
		"Dear Jane Doe, the book you are waiting for is available again.",
		waitlist.Message{PatronName: "Jane Doe"}.Text(),
	)
}

func Test_RateLimited(t *testing.T) {
	t.Run("InvalidLimit", func(t *testing.T) {
		_, err := waitlist.NewRateLimited(newRecordingDispatcher(), 0, 1)
		assert.ErrorIs(t, err, waitlist.ErrInvalidRateLimit)
	})

	t.Run("ForwardsWithinBurst", func(t *testing.T) {
		next := newRecordingDispatcher()
		limited, err := waitlist.NewRateLimited(next, 1, 2)
		require.NoError(t, err)

		require.NoError(t, limited.Dispatch(context.Background(), waitlist.Message{}))
		require.NoError(t, limited.Dispatch(context.Background(), waitlist.Message{}))
		assert.Len(t, next.Messages(), 2)
	})

	t.Run("GivesUpWhenTheContextEnds", func(t *testing.T) {
		next := newRecordingDispatcher()
		limited, err := waitlist.NewRateLimited(next, 0.001, 1)
		require.NoError(t, err)

		require.NoError(t, limited.Dispatch(context.Background(), waitlist.Message{}))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.Error(t, limited.Dispatch(ctx, waitlist.Message{}))
		assert.Len(t, next.Messages(), 1)
	})
}
