// Package promadapters implements eventstore.MetricsCollector with the Prometheus client library.
package promadapters

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// MetricsCollector maps durations to histograms, counters to counters and values to gauges.
// Vectors are registered on first use. Their label names are taken from the first call,
// so every call for the same metric must use the same label keys.
type MetricsCollector struct {
	registerer prometheus.Registerer
	namespace  string

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewMetricsCollector creates a collector that registers its vectors with registerer.
func NewMetricsCollector(registerer prometheus.Registerer, namespace string) *MetricsCollector {
	return &MetricsCollector{
		registerer: registerer,
		namespace:  namespace,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

func (m *MetricsCollector) RecordDuration(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	m.mu.Lock()
	vec, ok := m.histograms[metric]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      metric,
			Help:      "Duration of " + humanize(metric) + ".",
			Buckets:   prometheus.DefBuckets,
		}, labelNames(labels))
		vec = registerOrExisting(m.registerer, vec)
		m.histograms[metric] = vec
	}
	m.mu.Unlock()

	if observer, err := vec.GetMetricWith(labels); err == nil {
		observer.Observe(duration.Seconds())
	}
}

func (m *MetricsCollector) IncrementCounter(_ context.Context, metric string, labels map[string]string) {
	m.mu.Lock()
	vec, ok := m.counters[metric]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      metric,
			Help:      "Count of " + humanize(metric) + ".",
		}, labelNames(labels))
		vec = registerOrExisting(m.registerer, vec)
		m.counters[metric] = vec
	}
	m.mu.Unlock()

	if counter, err := vec.GetMetricWith(labels); err == nil {
		counter.Inc()
	}
}

func (m *MetricsCollector) RecordValue(_ context.Context, metric string, value float64, labels map[string]string) {
	m.mu.Lock()
	vec, ok := m.gauges[metric]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      metric,
			Help:      "Last value of " + humanize(metric) + ".",
		}, labelNames(labels))
		vec = registerOrExisting(m.registerer, vec)
		m.gauges[metric] = vec
	}
	m.mu.Unlock()

	if gauge, err := vec.GetMetricWith(labels); err == nil {
		gauge.Set(value)
	}
}

// registerOrExisting returns the already registered collector if an equal one exists,
// e.g. when two collectors share a registry.
func registerOrExisting[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
	}

	return collector
}

func labelNames(labels map[string]string) []string {
	return slices.Sorted(maps.Keys(labels))
}

func humanize(metric string) string {
	return strings.ReplaceAll(metric, "_", " ")
}

var _ eventstore.MetricsCollector = (*MetricsCollector)(nil)
