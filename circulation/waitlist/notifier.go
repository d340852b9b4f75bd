package waitlist

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	// NotificationsMetric counts dispatch outcomes.
	//
	// Labels: channel, status
	NotificationsMetric = "waitlist_notifications_total"

	// NotifyDurationMetric tracks the duration of one NotifyWaiters run.
	NotifyDurationMetric = "waitlist_notify_duration_seconds"

	// SpanNameNotifyWaiters is the tracing span name of one NotifyWaiters run.
	SpanNameNotifyWaiters = "waitlist.notify_waiters"

	statusDelivered = "delivered"
	statusFailed    = "failed"
	statusSkipped   = "skipped"

	recordingCommandType = "RecordPatronNotifications"
)

// Report summarizes one NotifyWaiters run.
type Report struct {
	Pending   int
	Delivered int
	Failed    int
	Skipped   int
	Recorded  int
}

// Notifier dispatches the pending notification requests of a freed book.
type Notifier struct {
	eventStore       shell.EventStore
	dispatcher       Dispatcher
	clock            shell.Clock
	logger           shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	retryOptions     []shell.RetryOption
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock sets the clock used for the OccurredAt of the recorded events.
func WithClock(clock shell.Clock) Option {
	return func(n *Notifier) {
		n.clock = clock
	}
}

// WithLogger sets the logger for dispatch failures and run summaries.
func WithLogger(logger shell.ContextualLogger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(n *Notifier) {
		n.metricsCollector = collector
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector shell.TracingCollector) Option {
	return func(n *Notifier) {
		n.tracingCollector = collector
	}
}

// WithRetryOptions sets the retry configuration for recording the deliveries.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(n *Notifier) {
		n.retryOptions = opts
	}
}

// NewNotifier creates a Notifier.
func NewNotifier(eventStore shell.EventStore, dispatcher Dispatcher, opts ...Option) *Notifier {
	notifier := &Notifier{
		eventStore: eventStore,
		dispatcher: dispatcher,
		clock:      shell.SystemClock,
	}

	for _, opt := range opts {
		opt(notifier)
	}

	return notifier
}

// NotifyWaiters dispatches a Message for every pending request of the book and marks the
// delivered ones as notified.
//
// A failed dispatch is logged and counted, the request stays pending and the loop continues.
// All deliveries are recorded with one append. If that append conflicts with a concurrent writer
// (another notifier run, or a patron disabling a request), the set of events is recomputed from a
// fresh read and only requests that are still pending get marked. Nothing is dispatched twice
// within one run.
func (n *Notifier) NotifyWaiters(ctx context.Context, bookID uuid.UUID) (Report, error) {
	start := time.Now()
	ctx, span := n.startSpan(ctx, bookID)

	report, err := n.notifyWaiters(ctx, bookID)

	n.finish(ctx, span, report, err, time.Since(start))

	return report, err
}

func (n *Notifier) notifyWaiters(ctx context.Context, bookID uuid.UUID) (Report, error) {
	var report Report

	ctx = eventstore.WithStrongConsistency(ctx)
	filter := BuildEventFilter(bookID)

	storableEvents, _, err := n.eventStore.Query(ctx, filter)
	if err != nil {
		return report, shell.ToCirculationError(err)
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return report, shell.ToCirculationError(err)
	}

	pending := core.PendingRequests(core.ProjectNotificationRequests(history, bookID.String()))
	report.Pending = len(pending)

	if len(pending) == 0 {
		return report, nil
	}

	patrons, err := n.patronsOf(ctx, pending)
	if err != nil {
		return report, err
	}

	bookTitle := titleOf(history, bookID.String())
	delivered := make(map[core.NotificationIDString]core.NotificationChannel, len(pending))

	for _, request := range pending {
		if ctx.Err() != nil {
			break
		}

		patron, registered := patrons[request.PatronID]
		if !registered {
			report.Skipped++
			n.count(ctx, "", statusSkipped)
			n.warn(ctx, "waitlist notification skipped: patron not registered", request, nil)

			continue
		}

		message := Message{
			NotificationID: request.ID,
			BookID:         request.BookID,
			BookTitle:      bookTitle,
			PatronID:       request.PatronID,
			PatronName:     patron.Name,
			Channel:        patron.PreferredNotificationMethod,
			Address:        patron.ContactAddress(),
		}

		if dispatchErr := n.dispatcher.Dispatch(ctx, message); dispatchErr != nil {
			report.Failed++
			n.count(ctx, message.Channel, statusFailed)
			n.warn(ctx, "waitlist notification dispatch failed", request, dispatchErr)

			continue
		}

		report.Delivered++
		n.count(ctx, message.Channel, statusDelivered)
		delivered[request.ID] = message.Channel
	}

	if len(delivered) == 0 {
		return report, nil
	}

	// Deliveries happened, so they are recorded even if the caller gave up meanwhile.
	recorded, err := n.recordDeliveries(context.WithoutCancel(ctx), bookID, delivered)
	report.Recorded = recorded

	return report, err
}

// recordDeliveries appends one PatronNotifiedAboutAvailability per delivered request that is still pending.
func (n *Notifier) recordDeliveries(
	ctx context.Context,
	bookID uuid.UUID,
	delivered map[core.NotificationIDString]core.NotificationChannel,
) (int, error) {

	filter := BuildEventFilter(bookID)
	recorded := 0

	retryOptions := slices.Clone(n.retryOptions)
	if n.metricsCollector != nil {
		retryOptions = append(retryOptions, shell.WithMetrics(n.metricsCollector, recordingCommandType))
	}

	_, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		recorded = 0

		storableEvents, maxSequenceNumber, err := n.eventStore.Query(retryCtx, filter)
		if err != nil {
			return err
		}

		history, err := shell.DomainEventsFrom(storableEvents)
		if err != nil {
			return err
		}

		occurredAt := n.clock()
		events := make(core.DomainEvents, 0, len(delivered))

		for _, request := range core.PendingRequests(core.ProjectNotificationRequests(history, bookID.String())) {
			if channel, ok := delivered[request.ID]; ok {
				events = append(events, core.BuildPatronNotifiedAboutAvailability(request, channel, occurredAt))
			}
		}

		if len(events) == 0 {
			return nil
		}

		toAppend, err := shell.StorableEventsFrom(events, shell.NewCommandMetadata())
		if err != nil {
			return err
		}

		if err = n.eventStore.Append(retryCtx, filter, maxSequenceNumber, toAppend[0], toAppend[1:]...); err != nil {
			return err
		}

		recorded = len(events)

		return nil
	}, retryOptions...)

	if err != nil {
		return 0, shell.ToCirculationError(err)
	}

	return recorded, nil
}

func (n *Notifier) patronsOf(
	ctx context.Context,
	requests core.NotificationRequests,
) (map[core.PatronIDString]core.PatronRegistered, error) {

	patronIDs := make([]string, 0, len(requests))
	for _, request := range requests {
		patronIDs = append(patronIDs, request.PatronID)
	}

	storableEvents, _, err := n.eventStore.Query(ctx, BuildPatronFilter(patronIDs[0], patronIDs[1:]...))
	if err != nil {
		return nil, shell.ToCirculationError(err)
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, shell.ToCirculationError(err)
	}

	return core.RegisteredPatrons(history), nil
}

func titleOf(history core.DomainEvents, bookID core.BookIDString) string {
	for _, event := range history {
		if e, ok := event.(core.BookCopyAddedToCirculation); ok && e.BookID == bookID {
			return e.Title
		}
	}

	return ""
}

// BuildEventFilter creates the filter for the waitlist events of the book and its catalog entry.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopyAddedToCirculationEventType,
			core.WaitlistNotificationRegisteredEventType,
			core.WaitlistNotificationDisabledEventType,
			core.PatronNotifiedAboutAvailabilityEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		Finalize()
}

// BuildPatronFilter creates the filter for the registrations of the given patrons.
func BuildPatronFilter(patronID core.PatronIDString, patronIDs ...core.PatronIDString) eventstore.Filter {
	predicates := make([]eventstore.FilterPredicate, 0, len(patronIDs))
	for _, id := range patronIDs {
		predicates = append(predicates, eventstore.P("PatronID", id))
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.PatronRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("PatronID", patronID), predicates...).
		Finalize()
}

/***** observability *****/

func (n *Notifier) startSpan(ctx context.Context, bookID uuid.UUID) (context.Context, shell.SpanContext) {
	if n.tracingCollector == nil {
		return ctx, nil
	}

	return n.tracingCollector.StartSpan(ctx, SpanNameNotifyWaiters, map[string]string{"book_id": bookID.String()})
}

func (n *Notifier) finish(ctx context.Context, span shell.SpanContext, report Report, err error, duration time.Duration) {
	status := shell.StatusOf(err)

	if n.metricsCollector != nil {
		n.metricsCollector.RecordDuration(ctx, NotifyDurationMetric, duration, map[string]string{"status": status})
	}

	if n.tracingCollector != nil && span != nil {
		n.tracingCollector.FinishSpan(span, status, map[string]string{
			"pending":   strconv.Itoa(report.Pending),
			"delivered": strconv.Itoa(report.Delivered),
			"failed":    strconv.Itoa(report.Failed),
		})
	}

	if n.logger == nil {
		return
	}

	if err != nil {
		n.logger.ErrorContext(ctx, "waitlist notify failed", shell.LogAttrError, err.Error())
		return
	}

	if report.Pending > 0 {
		n.logger.InfoContext(ctx, "waitlist notify completed",
			"pending", report.Pending,
			"delivered", report.Delivered,
			"failed", report.Failed,
			"skipped", report.Skipped,
			"recorded", report.Recorded,
			shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
		)
	}
}

func (n *Notifier) count(ctx context.Context, channel core.NotificationChannel, status string) {
	if n.metricsCollector == nil {
		return
	}

	n.metricsCollector.IncrementCounter(ctx, NotificationsMetric, map[string]string{
		"channel": string(channel),
		"status":  status,
	})
}

func (n *Notifier) warn(ctx context.Context, msg string, request core.NotificationRequest, err error) {
	if n.logger == nil {
		return
	}

	args := []any{"notification_id", request.ID, "book_id", request.BookID, "patron_id", request.PatronID}
	if err != nil {
		args = append(args, shell.LogAttrError, err.Error())
	}

	n.logger.WarnContext(ctx, msg, args...)
}
