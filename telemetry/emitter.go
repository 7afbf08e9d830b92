// Package telemetry records operational events emitted by the
// storefront service.
package telemetry

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event names emitted by the storefront service.
const (
	EventCartAdd         = "cart.add"
	EventCartClamp       = "cart.clamp"
	EventCartCleared     = "cart.cleared"
	EventOrderConfirmed  = "order.confirmed"
	EventOrderRejected   = "order.rejected"
	EventOrderDeleted    = "order.deleted"
	EventIntegrityGap    = "pricing.integrity_gap"
	EventStateDiscarded  = "state.section_discarded"
	EventCatalogReplaced = "catalog.replaced"
)

// Event is a single telemetry record.
type Event struct {
	Name       string
	Severity   Severity
	OccurredAt time.Time
	TraceID    string
	SpanID     string
	Fields     map[string]string
}

// Sink receives telemetry events.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// Emitter records telemetry events. A nil emitter or a nil sink is a
// no-op, so callers never guard their Emit calls.
type Emitter struct {
	sink  Sink
	clock func() time.Time
}

// NewEmitter creates a telemetry emitter backed by the given sink.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, clock: time.Now}
}

// NewEmitterWithClock creates an emitter with an injected clock.
func NewEmitterWithClock(sink Sink, clock func() time.Time) *Emitter {
	if clock == nil {
		clock = time.Now
	}
	return &Emitter{sink: sink, clock: clock}
}

// Emit records a telemetry event, stamping the occurred-at time and
// the active trace context when a span is recording.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	if e == nil || e.sink == nil {
		return
	}
	if event.Severity == "" {
		event.Severity = SeverityInfo
	}
	if event.OccurredAt.IsZero() {
		clock := e.clock
		if clock == nil {
			clock = time.Now
		}
		event.OccurredAt = clock().UTC()
	}
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		event.TraceID = span.SpanContext().TraceID().String()
		event.SpanID = span.SpanContext().SpanID().String()
	}
	e.sink.Record(ctx, event)
}

// LogSink writes events to a standard logger.
type LogSink struct {
	Logger *log.Logger
}

// Record writes the event as a single log line.
func (s LogSink) Record(_ context.Context, event Event) {
	logger := s.Logger
	if logger == nil {
		return
	}
	logger.Printf("telemetry %s severity=%s occurred_at=%s trace_id=%s fields=%v",
		event.Name, event.Severity, event.OccurredAt.Format(time.RFC3339), event.TraceID, event.Fields)
}
