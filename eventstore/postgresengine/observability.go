package postgresengine

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

func (es *EventStore) logSQL(ctx context.Context, action string, sqlQuery string, duration time.Duration) {
	if es.logger != nil {
		es.logger.DebugContext(ctx, "executed sql for: "+action, "duration_ms", toMilliseconds(duration), "query", sqlQuery)
	}
}

func (es *EventStore) logInfo(ctx context.Context, msg string, args ...any) {
	if es.logger != nil {
		es.logger.InfoContext(ctx, "eventstore operation: "+msg, args...)
	}
}

func (es *EventStore) logWarn(ctx context.Context, msg string, args ...any) {
	if es.logger != nil {
		es.logger.WarnContext(ctx, msg, args...)
	}
}

func (es *EventStore) logError(ctx context.Context, msg string, err error, args ...any) {
	if es.logger != nil {
		es.logger.ErrorContext(ctx, msg, append([]any{"error", err.Error()}, args...)...)
	}
}

func (es *EventStore) recordSuccess(
	ctx context.Context,
	operation string,
	durationMetric string,
	countMetric string,
	eventCount int,
	duration time.Duration,
) {

	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{eventstore.LabelOperation: operation, eventstore.LabelStatus: eventstore.StatusSuccess}
	es.metricsCollector.RecordDuration(ctx, durationMetric, duration, labels)
	es.metricsCollector.RecordValue(ctx, countMetric, float64(eventCount), labels)
}

func (es *EventStore) recordError(
	ctx context.Context,
	operation string,
	durationMetric string,
	errorType string,
	duration time.Duration,
) {

	if es.metricsCollector == nil {
		return
	}

	es.metricsCollector.RecordDuration(ctx, durationMetric, duration, map[string]string{
		eventstore.LabelOperation: operation,
		eventstore.LabelStatus:    eventstore.StatusError,
	})
	es.metricsCollector.IncrementCounter(ctx, eventstore.MetricDatabaseErrors, map[string]string{
		eventstore.LabelOperation: operation,
		eventstore.LabelErrorType: errorType,
	})
}

func (es *EventStore) recordConflict(ctx context.Context, duration time.Duration) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{eventstore.LabelOperation: eventstore.OperationAppend, eventstore.LabelStatus: eventstore.StatusConflict}
	es.metricsCollector.RecordDuration(ctx, eventstore.MetricAppendDuration, duration, labels)
	es.metricsCollector.IncrementCounter(ctx, eventstore.MetricConcurrencyConflicts, labels)
}

func (es *EventStore) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, name, attrs)
}

func (es *EventStore) finishSpan(span eventstore.SpanContext, status string, attrs map[string]string) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, status, attrs)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
