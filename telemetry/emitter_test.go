package telemetry

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"
)

type captureSink struct {
	events []Event
}

func (s *captureSink) Record(_ context.Context, event Event) {
	s.events = append(s.events, event)
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestEmitStampsDefaults(t *testing.T) {
	sink := &captureSink{}
	emitter := NewEmitterWithClock(sink, fixedClock)

	emitter.Emit(context.Background(), Event{
		Name:   EventCartAdd,
		Fields: map[string]string{"item_id": "margherita"},
	})

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	got := sink.events[0]
	if got.Severity != SeverityInfo {
		t.Fatalf("expected default severity info, got %s", got.Severity)
	}
	if !got.OccurredAt.Equal(fixedClock()) {
		t.Fatalf("expected clock stamp, got %v", got.OccurredAt)
	}
	if got.TraceID != "" || got.SpanID != "" {
		t.Fatalf("expected no trace context without a span, got %+v", got)
	}
}

func TestEmitKeepsExplicitValues(t *testing.T) {
	sink := &captureSink{}
	emitter := NewEmitterWithClock(sink, fixedClock)

	explicit := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	emitter.Emit(context.Background(), Event{
		Name:       EventOrderRejected,
		Severity:   SeverityWarn,
		OccurredAt: explicit,
	})

	got := sink.events[0]
	if got.Severity != SeverityWarn {
		t.Fatalf("expected warn kept, got %s", got.Severity)
	}
	if !got.OccurredAt.Equal(explicit) {
		t.Fatalf("expected explicit time kept, got %v", got.OccurredAt)
	}
}

func TestNilEmitterAndNilSinkAreNoOps(t *testing.T) {
	var emitter *Emitter
	emitter.Emit(context.Background(), Event{Name: EventCartAdd})

	NewEmitter(nil).Emit(context.Background(), Event{Name: EventCartAdd})
}

func TestLogSinkRecord(t *testing.T) {
	var buf bytes.Buffer
	sink := LogSink{Logger: log.New(&buf, "", 0)}
	emitter := NewEmitterWithClock(sink, fixedClock)

	emitter.Emit(context.Background(), Event{
		Name:   EventOrderConfirmed,
		Fields: map[string]string{"order_id": "o1"},
	})

	line := buf.String()
	if !strings.Contains(line, EventOrderConfirmed) {
		t.Fatalf("expected event name in log line: %q", line)
	}
	if !strings.Contains(line, "severity=INFO") {
		t.Fatalf("expected severity in log line: %q", line)
	}
	if !strings.Contains(line, "order_id:o1") {
		t.Fatalf("expected fields in log line: %q", line)
	}
}

func TestLogSinkNilLogger(t *testing.T) {
	NewEmitter(LogSink{}).Emit(context.Background(), Event{Name: EventCartAdd})
}
