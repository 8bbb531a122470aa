package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"

	"rentalpricing/internal/pricing"
)

// quoteOptions are the per-invocation inputs taken from flags.
type quoteOptions struct {
	QuotePath   string
	BackendPath string
	Refresh     bool
}

// quoteOutput is the JSON document written to stdout.
type quoteOutput struct {
	QuoteID     string                     `json:"quote_id"`
	Breakdown   pricing.PriceBreakdown     `json:"breakdown"`
	Customer    pricing.CustomerBreakdown  `json:"customer"`
	Host        pricing.HostBreakdown      `json:"host"`
	Platform    pricing.PlatformBreakdown  `json:"platform"`
	Display     map[string]string          `json:"display"`
	Consistency *pricing.ConsistencyReport `json:"consistency,omitempty"`
}

type quoter struct {
	rates   *pricing.RateCache
	checker *pricing.ConsistencyChecker
	logger  *slog.Logger
}

func (q *quoter) run(ctx context.Context, opts quoteOptions, stdin io.Reader) (*quoteOutput, error) {
	if opts.Refresh {
		rate := q.rates.Refresh(ctx)
		q.logger.Debug("platform fee rate resolved", "platform_fee_rate", rate)
	}

	qf, err := readQuoteFile(opts.QuotePath, stdin)
	if err != nil {
		return nil, err
	}
	in, err := qf.BookingInput()
	if err != nil {
		return nil, fmt.Errorf("resolving extension: %w", err)
	}
	if err := pricing.ValidateBookingInput(in); err != nil {
		return nil, err
	}

	breakdown := pricing.NewCalculator(q.rates).Calculate(in)
	out := &quoteOutput{
		QuoteID:   ulid.Make().String(),
		Breakdown: breakdown,
		Customer:  breakdown.Customer(),
		Host:      breakdown.Host(),
		Platform:  breakdown.Platform(),
		Display:   breakdown.Display(),
	}

	if opts.BackendPath != "" {
		backend, err := readBackendBreakdown(opts.BackendPath)
		if err != nil {
			return nil, err
		}
		report := q.checker.Check(ctx, out.QuoteID, breakdown, backend)
		out.Consistency = &report
	}

	q.logger.Info("quote computed",
		"quote_id", out.QuoteID,
		"currency", breakdown.Currency,
		"platform_fee_rate", breakdown.PlatformFeeRate,
		"total_amount", breakdown.TotalAmount,
	)
	return out, nil
}

func readQuoteFile(path string, stdin io.Reader) (pricing.QuoteFile, error) {
	if path == "" || path == "-" {
		return pricing.DecodeQuoteFile(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return pricing.QuoteFile{}, fmt.Errorf("opening quote file: %w", err)
	}
	defer f.Close()
	return pricing.DecodeQuoteFile(f)
}

func readBackendBreakdown(path string) (pricing.PriceBreakdown, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pricing.PriceBreakdown{}, fmt.Errorf("reading backend breakdown: %w", err)
	}
	var b pricing.PriceBreakdown
	if err := json.Unmarshal(data, &b); err != nil {
		return pricing.PriceBreakdown{}, fmt.Errorf("decoding backend breakdown: %w", err)
	}
	return b, nil
}
