package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// SpySpanRecord represents one started span.
type SpySpanRecord struct {
	Name       string
	Status     string
	Attributes map[string]string
	Finished   bool
}

// TracingCollectorSpy captures span calls for testing.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpySpanRecord
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy instance.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &SpySpanRecord{Name: name, Attributes: make(map[string]string)}
	for key, val := range attrs {
		record.Attributes[key] = val
	}

	s.spans = append(s.spans, record)

	return ctx, &spySpan{spy: s, record: record}
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*spySpan)
	if !ok {
		return
	}

	for key, val := range attrs {
		span.AddAttribute(key, val)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	span.record.Status = status
	span.record.Finished = true
}

// Spans returns copies of all recorded spans.
func (s *TracingCollectorSpy) Spans() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpySpanRecord, 0, len(s.spans))
	for _, span := range s.spans {
		spans = append(spans, *span)
	}

	return spans
}

type spySpan struct {
	spy    *TracingCollectorSpy
	record *SpySpanRecord
}

func (s *spySpan) SetStatus(status string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	s.record.Status = status
}

func (s *spySpan) AddAttribute(key, value string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	s.record.Attributes[key] = value
}
