package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"

	"rentalpricing/internal/common/events"
	"rentalpricing/internal/common/nats"
	"rentalpricing/internal/pricing"
)

// Config holds command configuration
type Config struct {
	Environment       string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat         string `envconfig:"LOG_FORMAT" default:"json"`
	PublishMismatches bool   `envconfig:"PRICING_PUBLISH_MISMATCHES" default:"false"`
	PushgatewayURL    string `envconfig:"PROMETHEUS_PUSHGATEWAY_URL"`

	Rate pricing.RateConfig
	NATS nats.Config
}

const (
	exitOK       = 0
	exitFailure  = 1
	exitMismatch = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var opts quoteOptions
	flag.StringVar(&opts.QuotePath, "file", "-", "quote file (YAML or JSON), - for stdin")
	flag.StringVar(&opts.BackendPath, "backend", "", "backend breakdown JSON to cross-check against")
	flag.BoolVar(&opts.Refresh, "refresh", true, "fetch the platform fee rate before pricing")
	flag.Parse()

	// Load configuration
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to process config: %v\n", err)
		return exitFailure
	}

	// Logs go to stderr so stdout carries only the quote
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics only leave the process through a Pushgateway
	var metrics *pricing.Metrics
	if cfg.PushgatewayURL != "" {
		reg := prometheus.NewRegistry()
		metrics = pricing.NewMetrics(reg)
		defer func() {
			if err := pushMetrics(context.WithoutCancel(ctx), cfg.PushgatewayURL, reg); err != nil {
				logger.Warn("failed to push metrics", "error", err, "url", cfg.PushgatewayURL)
			}
		}()
	}

	var publisher events.EventPublisher
	if cfg.PublishMismatches {
		client, err := nats.New(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to connect to NATS", "error", err)
			return exitFailure
		}
		defer client.Close()

		if err := client.EnsureStream(ctx, nats.DefaultStreamConfig(cfg.NATS.Stream)); err != nil {
			logger.Error("failed to ensure stream", "error", err)
			return exitFailure
		}
		if err := client.HealthCheck(); err != nil {
			logger.Error("NATS unhealthy", "error", err)
			return exitFailure
		}
		publisher = nats.NewPublisher(client, logger)
	}

	rates, err := pricing.NewRateCache(pricing.RateCacheDeps{
		Source:    pricing.NewHTTPRateSource(cfg.Rate),
		Logger:    logger,
		Metrics:   metrics,
		Publisher: publisher,
	})
	if err != nil {
		logger.Error("failed to create rate cache", "error", err)
		return exitFailure
	}

	q := &quoter{
		rates:   rates,
		checker: pricing.NewConsistencyChecker(logger, metrics, publisher),
		logger:  logger,
	}

	out, err := q.run(ctx, opts, os.Stdin)
	if err != nil {
		logger.Error("quote failed", "error", err, "environment", cfg.Environment)
		return exitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("failed to write quote", "error", err)
		return exitFailure
	}

	if out.Consistency != nil && !out.Consistency.IsValid {
		return exitMismatch
	}
	return exitOK
}

func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
