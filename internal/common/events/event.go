package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// Event represents a domain event envelope
type Event struct {
	ID            string          `json:"event_id"`
	Type          string          `json:"type"`
	Version       int             `json:"version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event
func NewEvent(eventType, aggregateType, aggregateID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            ulid.Make().String(),
		Type:          eventType,
		Version:       1,
		OccurredAt:    time.Now().UTC(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Data:          dataBytes,
	}, nil
}

// WithCorrelation sets the correlation ID
func (e *Event) WithCorrelation(correlationID string) *Event {
	e.CorrelationID = correlationID
	return e
}

// EventPublisher publishes events to a message broker
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// Pricing event types
const (
	EventPlatformFeeRateRefreshed = "pricing.platform_fee_rate.refreshed"
	EventConsistencyMismatch      = "pricing.consistency.mismatch"
)

// Aggregate types
const (
	AggregateQuote           = "pricing_quote"
	AggregatePlatformFeeRate = "platform_fee_rate"
)

// PlatformFeeRateRefreshedData is the data for pricing.platform_fee_rate.refreshed events
type PlatformFeeRateRefreshedData struct {
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
}

// FieldMismatchData describes one diverging breakdown field
type FieldMismatchData struct {
	Field      string  `json:"field"`
	Frontend   float64 `json:"frontend"`
	Backend    float64 `json:"backend"`
	Difference float64 `json:"difference"`
}

// ConsistencyMismatchData is the data for pricing.consistency.mismatch events
type ConsistencyMismatchData struct {
	QuoteID   string              `json:"quote_id"`
	Currency  string              `json:"currency"`
	Tolerance float64             `json:"tolerance"`
	Fields    []FieldMismatchData `json:"fields"`
}
