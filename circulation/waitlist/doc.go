// Package waitlist notifies the patrons waiting for a book once it was freed by a return
// or a canceled reservation.
//
// The Notifier dispatches one Message per pending notification request and records all
// deliveries with a single append. Delivery itself is an external concern behind the
// Dispatcher interface: ChannelRouter picks a dispatcher per preferred channel, RateLimited
// throttles any dispatcher, and LogDispatcher only writes a structured log line.
package waitlist
