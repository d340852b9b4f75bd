// Package fixtures provides the "given" side of circulation tests: a seeded in-memory event store
// and readers for what a handler appended.
package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memoryengine"
)

// Given appends the domain events to the store in the given order.
func Given(ctx context.Context, t *testing.T, store shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	anyEvent := eventstore.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		_, maxSequenceNumber, err := store.Query(ctx, anyEvent)
		require.NoError(t, err)

		storableEvent, err := shell.StorableEventFrom(event, shell.NewCommandMetadata())
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, anyEvent, maxSequenceNumber, storableEvent))
	}
}

// NewSeededStore returns an in-memory event store that already holds the events.
func NewSeededStore(t *testing.T, events ...core.DomainEvent) *memoryengine.EventStore {
	t.Helper()

	store := memoryengine.NewEventStore()
	Given(context.Background(), t, store, events...)

	return store
}

// AllEvents returns all stored events as domain events.
func AllEvents(ctx context.Context, t *testing.T, store shell.QueriesEvents) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := store.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	events, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return events
}

// EventsOfType returns the stored events with the given event type.
func EventsOfType(ctx context.Context, t *testing.T, store shell.QueriesEvents, eventType string) core.DomainEvents {
	t.Helper()

	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf(eventType).Finalize()

	storableEvents, _, err := store.Query(ctx, filter)
	require.NoError(t, err)

	events, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return events
}

// BookAdded builds a BookCopyAddedToCirculation event with fixed catalog data.
func BookAdded(bookID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildBookCopyAddedToCirculation(
		bookID,
		"978-1-098-10013-1",
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		at,
	)
}

// BookRemoved builds a BookCopyRemovedFromCirculation event.
func BookRemoved(bookID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildBookCopyRemovedFromCirculation(bookID, at)
}

// PatronRegistered builds a PatronRegistered event for a patron who prefers email.
func PatronRegistered(patronID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildPatronRegistered(
		patronID,
		"Jane Doe",
		"jane.doe@example.com",
		"+49 30 1234567",
		core.ChannelEmail,
		at,
	)
}

// Reserved builds a BookReserved event opening transaction txID.
func Reserved(txID, bookID, patronID uuid.UUID, until, at time.Time) core.DomainEvent {
	return core.BuildBookReserved(txID, bookID, patronID, until, at)
}

// Borrowed builds a BookBorrowed event opening transaction txID.
func Borrowed(txID, bookID, patronID uuid.UUID, until, at time.Time) core.DomainEvent {
	return core.BuildBookBorrowed(txID, bookID, patronID, until, at)
}

// Returned builds a BookReturned event closing transaction txID.
func Returned(txID, bookID, patronID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildBookReturned(txID.String(), bookID, patronID.String(), at)
}

// Canceled builds a ReservationCanceled event for transaction txID.
func Canceled(txID, bookID, patronID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildReservationCanceled(txID.String(), bookID, patronID, at)
}

// NotificationRegistered builds a WaitlistNotificationRegistered event.
func NotificationRegistered(notificationID, bookID, patronID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildWaitlistNotificationRegistered(notificationID, bookID, patronID, at)
}

// NotificationDisabled builds a WaitlistNotificationDisabled event.
func NotificationDisabled(notificationID, bookID, patronID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildWaitlistNotificationDisabled(notificationID.String(), bookID, patronID, at)
}

// PatronNotified builds a PatronNotifiedAboutAvailability event for the request.
func PatronNotified(notificationID, bookID, patronID uuid.UUID, at time.Time) core.DomainEvent {
	request := core.NotificationRequest{
		ID:       notificationID.String(),
		BookID:   bookID.String(),
		PatronID: patronID.String(),
	}

	return core.BuildPatronNotifiedAboutAvailability(request, core.ChannelEmail, at)
}
