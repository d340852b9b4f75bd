package waitlist

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
)

// ErrNoDispatcherForChannel is returned by ChannelRouter for a channel without a dispatcher.
var ErrNoDispatcherForChannel = errors.New("no dispatcher for notification channel")

// ErrInvalidRateLimit is returned by NewRateLimited for a non-positive rate or burst.
var ErrInvalidRateLimit = errors.New("rate and burst must be positive")

// Message is one availability notification addressed to one patron.
type Message struct {
	NotificationID core.NotificationIDString
	BookID         core.BookIDString
	BookTitle      string
	PatronID       core.PatronIDString
	PatronName     string
	Channel        core.NotificationChannel
	Address        string
}

// Text renders the human-readable notification.
func (m Message) Text() string {
	if m.BookTitle == "" {
		return fmt.Sprintf("Dear %s, the book you are waiting for is available again.", m.PatronName)
	}

	return fmt.Sprintf("Dear %s, %q is available again.", m.PatronName, m.BookTitle)
}

// Dispatcher delivers a Message through an external channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, message Message) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, message Message) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, message Message) error {
	return f(ctx, message)
}

/***** ChannelRouter *****/

// ChannelRouter dispatches by the preferred channel of the patron.
type ChannelRouter struct {
	routes map[core.NotificationChannel]Dispatcher
}

// NewChannelRouter creates a ChannelRouter for the email and the phone path.
func NewChannelRouter(email Dispatcher, phone Dispatcher) ChannelRouter {
	return ChannelRouter{
		routes: map[core.NotificationChannel]Dispatcher{
			core.ChannelEmail: email,
			core.ChannelPhone: phone,
		},
	}
}

// Dispatch forwards the message to the dispatcher of its channel.
func (r ChannelRouter) Dispatch(ctx context.Context, message Message) error {
	dispatcher, ok := r.routes[message.Channel]
	if !ok || dispatcher == nil {
		return fmt.Errorf("%w: %q", ErrNoDispatcherForChannel, message.Channel)
	}

	return dispatcher.Dispatch(ctx, message)
}

/***** LogDispatcher *****/

// LogDispatcher "delivers" a message by logging it. It is the default when no real channel is wired.
type LogDispatcher struct {
	logger shell.ContextualLogger
}

// NewLogDispatcher creates a LogDispatcher.
func NewLogDispatcher(logger shell.ContextualLogger) LogDispatcher {
	return LogDispatcher{logger: logger}
}

// Dispatch writes the message as one info log line.
func (d LogDispatcher) Dispatch(ctx context.Context, message Message) error {
	d.logger.InfoContext(ctx, "availability notification dispatched",
		"notification_id", message.NotificationID,
		"book_id", message.BookID,
		"patron_id", message.PatronID,
		"channel", string(message.Channel),
		"address", message.Address,
		"text", message.Text(),
	)

	return nil
}

/***** RateLimited *****/

// RateLimited puts a token bucket in front of another dispatcher.
type RateLimited struct {
	next    Dispatcher
	limiter *rate.Limiter
}

// NewRateLimited creates a RateLimited dispatcher allowing ratePerSecond messages with the given burst.
func NewRateLimited(next Dispatcher, ratePerSecond float64, burst int) (RateLimited, error) {
	if ratePerSecond <= 0 || burst <= 0 {
		return RateLimited{}, ErrInvalidRateLimit
	}

	return RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}, nil
}

// Dispatch waits for a token, then forwards the message.
// It fails if the context ends before a token is available.
func (d RateLimited) Dispatch(ctx context.Context, message Message) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}

	return d.next.Dispatch(ctx, message)
}
