package promadapters_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/promadapters"
)

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := promadapters.NewMetricsCollector(registry, "librarian")
	labels := map[string]string{eventstore.LabelOperation: eventstore.OperationAppend}

	collector.IncrementCounter(context.Background(), eventstore.MetricConcurrencyConflicts, labels)
	collector.IncrementCounter(context.Background(), eventstore.MetricConcurrencyConflicts, labels)

	expected := `
# HELP librarian_eventstore_concurrency_conflicts_total Count of eventstore concurrency conflicts total.
# TYPE librarian_eventstore_concurrency_conflicts_total counter
librarian_eventstore_concurrency_conflicts_total{operation="append"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "librarian_eventstore_concurrency_conflicts_total"))
}

func Test_MetricsCollector_RecordDurationAndValue(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := promadapters.NewMetricsCollector(registry, "")
	labels := map[string]string{eventstore.LabelOperation: eventstore.OperationQuery, eventstore.LabelStatus: eventstore.StatusSuccess}

	collector.RecordDuration(context.Background(), eventstore.MetricQueryDuration, 20*time.Millisecond, labels)
	collector.RecordValue(context.Background(), eventstore.MetricEventsQueried, 7, labels)

	count, err := testutil.GatherAndCount(registry, eventstore.MetricQueryDuration, eventstore.MetricEventsQueried)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func Test_MetricsCollector_SharedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := promadapters.NewMetricsCollector(registry, "")
	second := promadapters.NewMetricsCollector(registry, "")
	labels := map[string]string{eventstore.LabelOperation: eventstore.OperationAppend}

	first.IncrementCounter(context.Background(), eventstore.MetricDatabaseErrors, labels)
	second.IncrementCounter(context.Background(), eventstore.MetricDatabaseErrors, labels)

	expected := `
# HELP eventstore_database_errors_total Count of eventstore database errors total.
# TYPE eventstore_database_errors_total counter
eventstore_database_errors_total{operation="append"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), eventstore.MetricDatabaseErrors))
}

func Test_MetricsCollector_MismatchingLabelsAreDropped(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := promadapters.NewMetricsCollector(registry, "")

	collector.IncrementCounter(context.Background(), "things_total", map[string]string{"a": "1"})

	assert.NotPanics(t, func() {
		collector.IncrementCounter(context.Background(), "things_total", map[string]string{"b": "1"})
	})
}
