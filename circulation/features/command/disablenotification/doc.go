// Package disablenotification implements the Disable Availability Notification use case.
package disablenotification
