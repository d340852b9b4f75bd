package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

func newCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Aggregation {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}

	require.Failf(t, "metric not found", "metric %s was not collected", name)

	return nil
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	collector, reader := newCollector()
	labels := map[string]string{eventstore.LabelOperation: eventstore.OperationQuery, eventstore.LabelStatus: eventstore.StatusSuccess}

	collector.RecordDuration(context.Background(), eventstore.MetricQueryDuration, 150*time.Millisecond, labels)

	histogram, ok := collect(t, reader, eventstore.MetricQueryDuration).(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "query"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter_ReusesInstrument(t *testing.T) {
	collector, reader := newCollector()
	labels := map[string]string{eventstore.LabelOperation: eventstore.OperationAppend}

	collector.IncrementCounter(context.Background(), eventstore.MetricConcurrencyConflicts, labels)
	collector.IncrementCounter(context.Background(), eventstore.MetricConcurrencyConflicts, labels)
	collector.IncrementCounter(context.Background(), eventstore.MetricConcurrencyConflicts, labels)

	sum, ok := collect(t, reader, eventstore.MetricConcurrencyConflicts).(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	collector, reader := newCollector()

	collector.RecordValue(context.Background(), eventstore.MetricEventsQueried, 42.5, nil)

	gauge, ok := collect(t, reader, eventstore.MetricEventsQueried).(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 42.5, gauge.DataPoints[0].Value)
}
