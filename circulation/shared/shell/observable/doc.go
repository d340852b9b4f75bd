// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The core handlers stay free of observability concerns; the wrappers translate their
// HandlerResult and errors into metrics, spans and log records.
package observable
