package testdoubles

import (
	"context"
	"sync"
	"time"
)

// SpyMetricRecord represents one recorded metric call.
type SpyMetricRecord struct {
	Kind     string
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// MetricsCollectorSpy captures metric calls for testing.
type MetricsCollectorSpy struct {
	mu      sync.Mutex
	records []SpyMetricRecord
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy instance.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "duration", Metric: metric, Duration: duration, Labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(_ context.Context, metric string, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "counter", Metric: metric, Value: 1, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(_ context.Context, metric string, value float64, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "value", Metric: metric, Value: value, Labels: labels})
}

func (s *MetricsCollectorSpy) record(record SpyMetricRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
}

// RecordsFor returns a copy of all records of the given metric.
func (s *MetricsCollectorSpy) RecordsFor(metric string) []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]SpyMetricRecord, 0)
	for _, record := range s.records {
		if record.Metric == metric {
			found = append(found, record)
		}
	}

	return found
}

// HasMetric checks if the metric was recorded with all the given labels.
func (s *MetricsCollectorSpy) HasMetric(metric string, labels map[string]string) bool {
	for _, record := range s.RecordsFor(metric) {
		matches := true
		for key, val := range labels {
			if record.Labels[key] != val {
				matches = false
				break
			}
		}

		if matches {
			return true
		}
	}

	return false
}
