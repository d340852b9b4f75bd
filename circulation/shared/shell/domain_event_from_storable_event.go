package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.BookCopyAddedToCirculationEventType:
		return unmarshalPayload[core.BookCopyAddedToCirculation](payload)

	case core.BookCopyRemovedFromCirculationEventType:
		return unmarshalPayload[core.BookCopyRemovedFromCirculation](payload)

	case core.PatronRegisteredEventType:
		return unmarshalPayload[core.PatronRegistered](payload)

	case core.BookReservedEventType:
		return unmarshalPayload[core.BookReserved](payload)

	case core.BookBorrowedEventType:
		return unmarshalPayload[core.BookBorrowed](payload)

	case core.BookReturnedEventType:
		return unmarshalPayload[core.BookReturned](payload)

	case core.ReservationCanceledEventType:
		return unmarshalPayload[core.ReservationCanceled](payload)

	case core.WaitlistNotificationRegisteredEventType:
		return unmarshalPayload[core.WaitlistNotificationRegistered](payload)

	case core.WaitlistNotificationDisabledEventType:
		return unmarshalPayload[core.WaitlistNotificationDisabled](payload)

	case core.PatronNotifiedAboutAvailabilityEventType:
		return unmarshalPayload[core.PatronNotifiedAboutAvailability](payload)

	case core.ReservingBookFailedEventType:
		return unmarshalPayload[core.ReservingBookFailed](payload)

	case core.BorrowingBookFailedEventType:
		return unmarshalPayload[core.BorrowingBookFailed](payload)

	case core.ReturningBookFailedEventType:
		return unmarshalPayload[core.ReturningBookFailed](payload)

	case core.CancelingReservationFailedEventType:
		return unmarshalPayload[core.CancelingReservationFailed](payload)

	case core.RegisteringNotificationFailedEventType:
		return unmarshalPayload[core.RegisteringNotificationFailed](payload)

	case core.DisablingNotificationFailedEventType:
		return unmarshalPayload[core.DisablingNotificationFailed](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(E)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
