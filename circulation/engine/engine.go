package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/addbookcopy"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/disablenotification"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registernotification"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/removebookcopy"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/bookstatus"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/circulation/waitlist"
)

// Engine executes the circulation operations against one event store.
type Engine struct {
	addBookCopy          shell.CoreCommandHandler[addbookcopy.Command]
	removeBookCopy       shell.CoreCommandHandler[removebookcopy.Command]
	registerPatron       shell.CoreCommandHandler[registerpatron.Command]
	reserveBook          shell.CoreCommandHandler[reservebook.Command]
	borrowBook           shell.CoreCommandHandler[borrowbook.Command]
	returnBook           shell.CoreCommandHandler[returnbook.Command]
	cancelReservation    shell.CoreCommandHandler[cancelreservation.Command]
	registerNotification shell.CoreCommandHandler[registernotification.Command]
	disableNotification  shell.CoreCommandHandler[disablenotification.Command]
	bookStatus           shell.CoreQueryHandler[bookstatus.Query, bookstatus.BookStatus]

	notifier      *waitlist.Notifier
	notifications sync.WaitGroup
	clock         shell.Clock
	logger        shell.ContextualLogger
}

type options struct {
	clock             shell.Clock
	reservationWindow time.Duration
	borrowWindow      time.Duration
	retryOptions      []shell.RetryOption
	dispatcher        waitlist.Dispatcher
	metricsCollector  shell.MetricsCollector
	tracingCollector  shell.TracingCollector
	logger            shell.ContextualLogger
}

// Option configures an Engine.
type Option func(*options)

// WithClock sets the clock that stamps every command.
func WithClock(clock shell.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithReservationWindow sets the length of a reservation.
func WithReservationWindow(window time.Duration) Option {
	return func(o *options) {
		o.reservationWindow = window
	}
}

// WithBorrowWindow sets the length of a borrow.
func WithBorrowWindow(window time.Duration) Option {
	return func(o *options) {
		o.borrowWindow = window
	}
}

// WithRetryOptions sets the retry configuration of all command handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(o *options) {
		o.retryOptions = opts
	}
}

// WithDispatcher sets the dispatcher of the waitlist notifier. The default only logs.
func WithDispatcher(dispatcher waitlist.Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = dispatcher
	}
}

// WithMetrics sets the metrics collector for handlers and the notifier.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = collector
	}
}

// WithTracing sets the tracing collector for handlers and the notifier.
func WithTracing(collector shell.TracingCollector) Option {
	return func(o *options) {
		o.tracingCollector = collector
	}
}

// WithLogger sets the logger for handlers and the notifier.
func WithLogger(logger shell.ContextualLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates an Engine with all handlers wired to the event store.
func New(eventStore shell.EventStore, opts ...Option) (*Engine, error) {
	o := options{
		clock:             shell.SystemClock,
		reservationWindow: reservebook.DefaultReservationWindow,
		borrowWindow:      borrowbook.DefaultBorrowWindow,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	if o.dispatcher == nil {
		o.dispatcher = waitlist.NewLogDispatcher(o.logger)
	}

	e := &Engine{
		notifier: waitlist.NewNotifier(eventStore, o.dispatcher,
			waitlist.WithClock(o.clock),
			waitlist.WithLogger(o.logger),
			waitlist.WithMetrics(o.metricsCollector),
			waitlist.WithTracing(o.tracingCollector),
			waitlist.WithRetryOptions(o.retryOptions...),
		),
		clock:  o.clock,
		logger: o.logger,
	}

	var err error

	if e.addBookCopy, err = observed[addbookcopy.Command](o,
		addbookcopy.NewCommandHandler(eventStore, addbookcopy.WithRetryOptions(o.retryOptions...))); err != nil {
		return nil, err
	}

	if e.removeBookCopy, err = observed[removebookcopy.Command](o,
		removebookcopy.NewCommandHandler(eventStore, removebookcopy.WithRetryOptions(o.retryOptions...))); err != nil {
		return nil, err
	}

	if e.registerPatron, err = observed[registerpatron.Command](o,
		registerpatron.NewCommandHandler(eventStore, registerpatron.WithRetryOptions(o.retryOptions...))); err != nil {
		return nil, err
	}

	if e.reserveBook, err = observed[reservebook.Command](o,
		reservebook.NewCommandHandler(eventStore,
			reservebook.WithRetryOptions(o.retryOptions...),
			reservebook.WithReservationWindow(o.reservationWindow),
		)); err != nil {
		return nil, err
	}

	if e.borrowBook, err = observed[borrowbook.Command](o,
		borrowbook.NewCommandHandler(eventStore,
			borrowbook.WithRetryOptions(o.retryOptions...),
			borrowbook.WithBorrowWindow(o.borrowWindow),
		)); err != nil {
		return nil, err
	}

	if e.returnBook, err = observed[returnbook.Command](o,
		returnbook.NewCommandHandler(eventStore, returnbook.WithRetryOptions(o.retryOptions...))); err != nil {
		return nil, err
	}

	if e.cancelReservation, err = observed[cancelreservation.Command](o,
		cancelreservation.NewCommandHandler(eventStore, cancelreservation.WithRetryOptions(o.retryOptions...))); err != nil {
		return nil, err
	}

	if e.registerNotification, err = observed[registernotification.Command](o,
		registernotification.NewCommandHandler(eventStore, registernotification.WithRetryOptions(o.retryOptions...))); err != nil {
		return nil, err
	}

	if e.disableNotification, err = observed[disablenotification.Command](o,
		disablenotification.NewCommandHandler(eventStore, disablenotification.WithRetryOptions(o.retryOptions...))); err != nil {
		return nil, err
	}

	if e.bookStatus, err = observable.NewQueryWrapper[bookstatus.Query, bookstatus.BookStatus](
		bookstatus.NewQueryHandler(eventStore),
		observable.WithQueryMetrics[bookstatus.Query, bookstatus.BookStatus](o.metricsCollector),
		observable.WithQueryTracing[bookstatus.Query, bookstatus.BookStatus](o.tracingCollector),
		observable.WithQueryLogging[bookstatus.Query, bookstatus.BookStatus](o.logger),
	); err != nil {
		return nil, err
	}

	return e, nil
}

func observed[C shell.Command](o options, handler shell.CoreCommandHandler[C]) (shell.CoreCommandHandler[C], error) {
	return observable.NewCommandWrapper[C](handler,
		observable.WithCommandMetrics[C](o.metricsCollector),
		observable.WithCommandTracing[C](o.tracingCollector),
		observable.WithCommandLogging[C](o.logger),
	)
}
