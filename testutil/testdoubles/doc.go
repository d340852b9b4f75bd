// Package testdoubles provides spies for the observability interfaces of the event store and the circulation engine.
package testdoubles
