package reservebook

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
)

// DefaultReservationWindow is the reservation length used unless configured otherwise.
const DefaultReservationWindow = 3 * 24 * time.Hour

// CommandHandler orchestrates the command processing workflow: Query -> Unmarshal -> Decide -> Append.
// Observability is added by wrapping it with observable.CommandWrapper.
type CommandHandler struct {
	eventStore        shell.EventStore
	retryOptions      []shell.RetryOption
	reservationWindow time.Duration
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithReservationWindow sets the length of a reservation.
func WithReservationWindow(window time.Duration) Option {
	return func(h *CommandHandler) {
		h.reservationWindow = window
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore:        eventStore,
		reservationWindow: DefaultReservationWindow,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	return shell.HandleWithRetry(ctx, func(retryCtx context.Context) (bool, error) {
		return shell.ExecuteDecision(
			retryCtx,
			h.eventStore,
			BuildEventFilter(command.BookID, command.PatronID),
			func(history core.DomainEvents) core.DecisionResult {
				return Decide(history, command, h.reservationWindow)
			},
		)
	}, h.retryOptions...)
}
