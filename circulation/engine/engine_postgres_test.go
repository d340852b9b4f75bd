package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/engine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-circulation-go/testutil/postgreswrapper"
)

func Test_Engine_OnPostgres_ConcurrentBorrowsAndWaitlist(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.New(t)
	dispatcher := &dispatchRecorder{}

	e, err := engine.New(wrapper.EventStore, engine.WithDispatcher(dispatcher))
	require.NoError(t, err)

	bookID := uuid.New()
	require.True(t, e.AddBookCopy(ctx, engine.BookCopy{
		BookID:  bookID,
		ISBN:    "978-0-13-235088-4",
		Title:   "Clean Code",
		Authors: "Robert C. Martin",
	}).Success)

	patrons := make([]uuid.UUID, 6)
	for i := range patrons {
		patrons[i] = uuid.New()
		require.True(t, e.RegisterPatron(ctx, engine.Patron{
			PatronID:                    patrons[i],
			Name:                        "Patron " + patrons[i].String()[:8],
			Email:                       patrons[i].String()[:8] + "@example.com",
			PreferredNotificationMethod: core.ChannelEmail,
		}).Success)
	}

	// act: all patrons try to borrow at once
	results := make([]engine.Result[engine.Empty], len(patrons))
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i, patronID := range patrons {
		wg.Add(1)

		go func() {
			defer wg.Done()
			<-start

			results[i] = e.Borrow(ctx, bookID, patronID)
		}()
	}

	close(start)
	wg.Wait()

	// assert: exactly one borrow committed
	var borrower uuid.UUID
	winners := 0
	for i, result := range results {
		if result.Success {
			winners++
			borrower = patrons[i]
			continue
		}

		assert.ErrorIs(t, result.Err, core.ErrInvalidTransition)
	}

	require.Equal(t, 1, winners)
	assert.Len(t, fixtures.EventsOfType(ctx, t, wrapper.EventStore, core.BookBorrowedEventType), 1)

	// act: a waiter registers and the borrower returns
	waiter := patrons[0]
	if waiter == borrower {
		waiter = patrons[1]
	}

	require.True(t, e.RegisterNotification(ctx, bookID, waiter).Success)
	require.True(t, e.Return(ctx, bookID).Success)

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, e.WaitForNotifications(waitCtx))

	// assert: the waiter was notified once and the request is closed
	messages := dispatcher.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, waiter.String(), messages[0].PatronID)
	assert.Len(t, fixtures.EventsOfType(ctx, t, wrapper.EventStore, core.PatronNotifiedAboutAvailabilityEventType), 1)
	assert.Equal(t, "Available", e.GetStatus(ctx, bookID).Payload.Status)
}
