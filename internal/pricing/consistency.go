package pricing

import (
	"context"
	"io"
	"log/slog"

	"rentalpricing/internal/common/events"
	"rentalpricing/internal/common/money"
)

// ConsistencyTolerance is the largest per-field difference, in currency
// units, accepted between two breakdowns of the same booking.
const ConsistencyTolerance = 0.01

// ConsistencyTolerance expressed in minor units
const toleranceMinor = 1

// FieldMismatch records one field that diverged beyond tolerance.
// Difference is frontend minus backend.
type FieldMismatch struct {
	Field      string  `json:"field"`
	Frontend   float64 `json:"frontend"`
	Backend    float64 `json:"backend"`
	Difference float64 `json:"difference"`
}

// ConsistencyReport is the result of comparing two breakdowns.
type ConsistencyReport struct {
	IsValid   bool            `json:"is_valid"`
	Errors    []FieldMismatch `json:"errors"`
	Tolerance float64         `json:"tolerance"`
}

type comparedField struct {
	name string
	get  func(PriceBreakdown) float64
}

var comparedFields = []comparedField{
	{"subtotal", func(b PriceBreakdown) float64 { return b.Subtotal }},
	{"platform_fee", func(b PriceBreakdown) float64 { return b.PlatformFee }},
	{"gst", func(b PriceBreakdown) float64 { return b.GST }},
	{"processing_fee", func(b PriceBreakdown) float64 { return b.ProcessingFee }},
	{"total_amount", func(b PriceBreakdown) float64 { return b.TotalAmount }},
}

// ValidateConsistency compares the subtotal, platform fee, GST, processing
// fee and total of two independently computed breakdowns, typically the
// client-side preview and the authoritative backend charge.
func ValidateConsistency(frontend, backend PriceBreakdown) ConsistencyReport {
	report := ConsistencyReport{
		Errors:    []FieldMismatch{},
		Tolerance: ConsistencyTolerance,
	}

	for _, f := range comparedFields {
		fe, be := f.get(frontend), f.get(backend)
		d := money.ToMinor(fe) - money.ToMinor(be)
		if d >= -toleranceMinor && d <= toleranceMinor {
			continue
		}
		report.Errors = append(report.Errors, FieldMismatch{
			Field:      f.name,
			Frontend:   fe,
			Backend:    be,
			Difference: ToTwoDecimals(fe - be),
		})
	}

	report.IsValid = len(report.Errors) == 0
	return report
}

// ConsistencyChecker runs ValidateConsistency and reports mismatches through
// logs, metrics and, when configured, a pricing.consistency.mismatch event.
// What to do about a mismatch is left to the caller.
type ConsistencyChecker struct {
	logger    *slog.Logger
	metrics   *Metrics
	publisher events.EventPublisher
}

// NewConsistencyChecker creates a checker. All arguments may be nil.
func NewConsistencyChecker(logger *slog.Logger, metrics *Metrics, publisher events.EventPublisher) *ConsistencyChecker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ConsistencyChecker{
		logger:    logger,
		metrics:   metrics,
		publisher: publisher,
	}
}

// Check compares the breakdowns for quoteID. Publish failures are logged and
// do not change the report.
func (c *ConsistencyChecker) Check(ctx context.Context, quoteID string, frontend, backend PriceBreakdown) ConsistencyReport {
	report := ValidateConsistency(frontend, backend)
	c.metrics.observeConsistency(report)
	if report.IsValid {
		return report
	}

	fields := make([]events.FieldMismatchData, len(report.Errors))
	for i, e := range report.Errors {
		fields[i] = events.FieldMismatchData(e)
		c.logger.Warn("pricing mismatch between frontend and backend",
			"quote_id", quoteID,
			"field", e.Field,
			"frontend", e.Frontend,
			"backend", e.Backend,
			"difference", e.Difference,
		)
	}

	if c.publisher == nil {
		return report
	}

	evt, err := events.NewEvent(events.EventConsistencyMismatch, events.AggregateQuote, quoteID, events.ConsistencyMismatchData{
		QuoteID:   quoteID,
		Currency:  string(frontend.Currency),
		Tolerance: report.Tolerance,
		Fields:    fields,
	})
	if err != nil {
		c.logger.Error("failed to build mismatch event", "error", err, "quote_id", quoteID)
		return report
	}
	evt.WithCorrelation(quoteID)

	if err := c.publisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("failed to publish mismatch event",
			"error", err,
			"quote_id", quoteID,
			"event_id", evt.ID,
		)
	}
	return report
}
