// Package shell is the imperative shell around the circulation core.
//
// It maps domain events to and from the storable events of the event store, carries the
// retry policy for optimistic concurrency conflicts and the observability helpers shared
// by all command and query handlers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
