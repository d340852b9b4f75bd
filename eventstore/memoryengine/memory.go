// Package memoryengine provides an in-process implementation of the event store.
//
// It has the same Query and Append semantics as the PostgreSQL engine, including the conditional
// append on the max sequence number of the filtered stream, and is safe for concurrent use.
// Events are lost when the process ends, so it serves tests, demos and single-process setups.
package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	payload        map[string]any
}

// EventStore keeps all events in a slice guarded by a RWMutex.
type EventStore struct {
	mu               sync.RWMutex
	events           []storedEvent
	logger           eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore)

// WithLogger sets the logger for the EventStore.
func WithLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// WithMetrics sets the metrics collector for the EventStore.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) {
		es.metricsCollector = collector
	}
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns all events matching the filter in append order
// and the highest sequence number among them (0 if none matched).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	start := time.Now()

	es.mu.RLock()
	eventStream, maxSequenceNumber := es.matching(filter)
	es.mu.RUnlock()

	es.record(ctx, eventstore.OperationQuery, eventstore.MetricQueryDuration, eventstore.StatusSuccess, time.Since(start))
	if es.metricsCollector != nil {
		es.metricsCollector.RecordValue(ctx, eventstore.MetricEventsQueried, float64(len(eventStream)),
			map[string]string{eventstore.LabelOperation: eventstore.OperationQuery})
	}

	if es.logger != nil {
		es.logger.DebugContext(ctx, "eventstore operation: query completed", "event_count", len(eventStream))
	}

	return eventStream, maxSequenceNumber, nil
}

// Append appends all events atomically if no event matching the filter has a sequence number
// greater than expectedMaxSequenceNumber. Otherwise it appends nothing and returns eventstore.ErrConcurrencyConflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	toStore := make([]storedEvent, 0, len(allEvents))
	for _, e := range allEvents {
		payload, err := decodePayload(e.PayloadJSON)
		if err != nil {
			es.record(ctx, eventstore.OperationAppend, eventstore.MetricAppendDuration, eventstore.StatusError, time.Since(start))
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}

		toStore = append(toStore, storedEvent{event: e, payload: payload})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	if _, currentMax := es.matching(filter); currentMax != expectedMaxSequenceNumber {
		es.record(ctx, eventstore.OperationAppend, eventstore.MetricAppendDuration, eventstore.StatusConflict, time.Since(start))
		if es.metricsCollector != nil {
			es.metricsCollector.IncrementCounter(ctx, eventstore.MetricConcurrencyConflicts,
				map[string]string{eventstore.LabelOperation: eventstore.OperationAppend})
		}

		if es.logger != nil {
			es.logger.InfoContext(ctx, "eventstore operation: concurrency conflict detected",
				"expected_sequence", expectedMaxSequenceNumber,
				"actual_sequence", currentMax)
		}

		return eventstore.ErrConcurrencyConflict
	}

	nextSequenceNumber := eventstore.MaxSequenceNumberUint(len(es.events))
	for i := range toStore {
		nextSequenceNumber++
		toStore[i].sequenceNumber = nextSequenceNumber
	}

	es.events = append(es.events, toStore...)

	es.record(ctx, eventstore.OperationAppend, eventstore.MetricAppendDuration, eventstore.StatusSuccess, time.Since(start))
	if es.metricsCollector != nil {
		es.metricsCollector.RecordValue(ctx, eventstore.MetricEventsAppended, float64(len(toStore)),
			map[string]string{eventstore.LabelOperation: eventstore.OperationAppend})
	}

	if es.logger != nil {
		es.logger.DebugContext(ctx, "eventstore operation: events appended", "event_count", len(toStore))
	}

	return nil
}

// Len returns the total number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// matching must be called with at least the read lock held.
func (es *EventStore) matching(filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint) {
	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if !matchesFilter(filter, stored) {
			continue
		}

		eventStream = append(eventStream, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	return eventStream, maxSequenceNumber
}

func (es *EventStore) record(ctx context.Context, operation, metric, status string, duration time.Duration) {
	if es.metricsCollector == nil {
		return
	}

	es.metricsCollector.RecordDuration(ctx, metric, duration, map[string]string{
		eventstore.LabelOperation: operation,
		eventstore.LabelStatus:    status,
	})
}

func matchesFilter(filter eventstore.Filter, stored storedEvent) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, item := range filter.Items() {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	matchesPredicate := func(predicate eventstore.FilterPredicate) bool {
		val, ok := stored.payload[predicate.Key()].(string)
		return ok && val == predicate.Val()
	}

	if item.AllPredicatesMustMatch() {
		for _, predicate := range item.Predicates() {
			if !matchesPredicate(predicate) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(item.Predicates(), matchesPredicate)
}

func decodePayload(payloadJSON []byte) (map[string]any, error) {
	payload := make(map[string]any)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, err
	}

	return payload, nil
}
