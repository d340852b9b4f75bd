package eventstore

import (
	"context"
	"time"
)

// ContextualLogger is the logging contract of the engines.
// It matches the context-aware methods of *slog.Logger, so a plain slog logger satisfies it.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector receives durations, counters and gauge values for engine and handler operations.
// See oteladapters and promadapters for ready-made implementations.
type MetricsCollector interface {
	RecordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(ctx context.Context, metric string, labels map[string]string)
	RecordValue(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector starts and finishes tracing spans without tying the engines to a tracing backend.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// Metric names, span names and label values shared by all engines.
const (
	MetricQueryDuration        = "eventstore_query_duration_seconds"
	MetricAppendDuration       = "eventstore_append_duration_seconds"
	MetricEventsQueried        = "eventstore_events_queried"
	MetricEventsAppended       = "eventstore_events_appended"
	MetricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	MetricDatabaseErrors       = "eventstore_database_errors_total"

	SpanNameQuery  = "eventstore.query"
	SpanNameAppend = "eventstore.append"

	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	OperationQuery  = "query"
	OperationAppend = "append"

	StatusSuccess  = "success"
	StatusError    = "error"
	StatusConflict = "conflict"
)
