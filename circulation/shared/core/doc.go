// Package core contains the functional core of the library circulation engine:
// the domain events, the projections that turn a book's event history into
// Transaction and NotificationRequest records, and the Status Resolver.
//
// Nothing in here performs I/O. The availability of a book is never stored; it is
// always recomputed from the time-bounded transaction windows for a given instant.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
