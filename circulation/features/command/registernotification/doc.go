// Package registernotification implements the Register Availability Notification use case.
//
// A patron asks to be told when a book becomes available again. The request stays pending
// until the waitlist notifier delivers it, or until the patron disables it.
package registernotification
