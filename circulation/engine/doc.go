// Package engine is the entry point of the circulation engine for request layers.
//
// Engine wires the command and query handlers of all features, wraps them with the observable
// decorators, and runs the waitlist notifier in the background after a successful return or
// cancellation. WaitForNotifications blocks until those runs have finished.
// Every operation returns a Result whose Description is the verbatim text to show to a patron.
package engine
