package nats

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"rentalpricing/internal/common/events"
)

func TestSubject(t *testing.T) {
	evt, err := events.NewEvent(events.EventConsistencyMismatch, events.AggregateQuote, "q1", struct{}{})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if got := Subject(evt); got != "events.pricing.consistency.mismatch" {
		t.Fatalf("Subject = %q", got)
	}
}

func TestDefaultStreamConfig(t *testing.T) {
	cfg := DefaultStreamConfig("PRICING")
	if cfg.Name != "PRICING" || cfg.Replicas != 1 || cfg.MaxAge != 7*24*time.Hour {
		t.Fatalf("unexpected stream config: %+v", cfg)
	}
	if len(cfg.Subjects) != 1 || cfg.Subjects[0] != "events.pricing.>" {
		t.Fatalf("stream must capture pricing event subjects, got %v", cfg.Subjects)
	}
}

func TestHealthCheck_Disconnected(t *testing.T) {
	c := &Client{conn: &nats.Conn{}}
	if err := c.HealthCheck(); err == nil {
		t.Fatal("a connection that never connected should be unhealthy")
	}
}
