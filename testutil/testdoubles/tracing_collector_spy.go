package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// SpySpanContext is a SpanContext implementation that records status and attributes.
type SpySpanContext struct {
	mu         sync.Mutex
	name       string
	status     string
	attributes map[string]string
}

// SetStatus implements the SpanContext interface.
func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

// AddAttribute implements the SpanContext interface.
func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attributes[key] = value
}

// SpySpanRecord represents a started and possibly finished span.
type SpySpanRecord struct {
	Name            string
	StartAttributes map[string]string
	EndAttributes   map[string]string
	Status          string
	Finished        bool
}

// TracingCollectorSpy is a TracingCollector implementation that captures spans for testing.
type TracingCollectorSpy struct {
	mu          sync.Mutex
	records     []*SpySpanRecord
	bySpan      map[*SpySpanContext]*SpySpanRecord
	recordCalls bool
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{
		bySpan:      make(map[*SpySpanContext]*SpySpanRecord),
		recordCalls: recordCalls,
	}
}

// StartSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, domaintypes.SpanContext) {
	span := &SpySpanContext{name: name, attributes: maps.Clone(attrs)}
	if span.attributes == nil {
		span.attributes = make(map[string]string)
	}

	if !s.recordCalls {
		return ctx, span
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := &SpySpanRecord{Name: name, StartAttributes: maps.Clone(attrs)}
	s.records = append(s.records, record)
	s.bySpan[span] = record

	return ctx, span
}

// FinishSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) FinishSpan(spanCtx domaintypes.SpanContext, status string, attrs map[string]string) {
	if !s.recordCalls {
		return
	}

	span, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if record, found := s.bySpan[span]; found {
		record.Status = status
		record.EndAttributes = maps.Clone(attrs)
		record.Finished = true
	}
}

// GetSpanRecords returns copies of all captured span records.
func (s *TracingCollectorSpy) GetSpanRecords() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpySpanRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, *record)
	}

	return records
}

// CountSpanRecordsForName returns the number of spans started with the given name.
func (s *TracingCollectorSpy) CountSpanRecordsForName(name string) int {
	count := 0

	for _, record := range s.GetSpanRecords() {
		if record.Name == name {
			count++
		}
	}

	return count
}

// Compile-time checks.
var (
	_ domaintypes.TracingCollector = (*TracingCollectorSpy)(nil)
	_ domaintypes.SpanContext      = (*SpySpanContext)(nil)
)
