package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"rentalpricing/internal/common/events"
)

// DefaultPlatformFeeRate is served until a refresh succeeds.
const DefaultPlatformFeeRate = 0.15

// PlatformFeePath is the configuration endpoint, relative to RateConfig.BaseURL.
const PlatformFeePath = "/public/platform-fee"

const maxRateResponseBytes = 64 << 10

// ErrRateFetch is returned by a RateSource when the platform fee rate could
// not be obtained.
var ErrRateFetch = errors.New("platform fee rate fetch failed")

// RateConfig holds configuration for the platform fee endpoint
type RateConfig struct {
	BaseURL string        `envconfig:"PRICING_CONFIG_BASE_URL" default:"http://localhost:8080/api"`
	Timeout time.Duration `envconfig:"PRICING_RATE_TIMEOUT" default:"5s"`
}

// RateProvider supplies the platform fee rate used when a booking does not
// carry its own. Implementations must not block.
type RateProvider interface {
	Get() float64
}

// RateSource fetches the current platform fee rate from an external system.
type RateSource interface {
	FetchPlatformFeeRate(ctx context.Context) (float64, error)
}

// StaticRate is a RateProvider with a fixed rate.
type StaticRate float64

// Get returns the fixed rate.
func (r StaticRate) Get() float64 { return float64(r) }

// HTTPRateSource reads the rate from GET {BaseURL}/public/platform-fee.
type HTTPRateSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPRateSource creates a rate source for the configured endpoint.
func NewHTTPRateSource(cfg RateConfig) *HTTPRateSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRateSource{
		url: strings.TrimRight(cfg.BaseURL, "/") + PlatformFeePath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type platformFeeResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		PlatformFeeRate *float64 `json:"platformFeeRate"`
	} `json:"data"`
}

// FetchPlatformFeeRate implements RateSource.
func (s *HTTPRateSource) FetchPlatformFeeRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: building request: %w", ErrRateFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRateFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRateResponseBytes))
		return 0, fmt.Errorf("%w: unexpected status %d", ErrRateFetch, resp.StatusCode)
	}

	var payload platformFeeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRateResponseBytes)).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: decoding response: %w", ErrRateFetch, err)
	}
	if !payload.Success {
		return 0, fmt.Errorf("%w: endpoint reported success=false", ErrRateFetch)
	}
	if payload.Data == nil || payload.Data.PlatformFeeRate == nil {
		return 0, fmt.Errorf("%w: response missing data.platformFeeRate", ErrRateFetch)
	}

	rate := *payload.Data.PlatformFeeRate
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return 0, fmt.Errorf("%w: rate %v outside [0,1]", ErrRateFetch, rate)
	}
	return rate, nil
}

// RateCache keeps the last successfully fetched platform fee rate for the
// life of the process. Reads are lock-free and never perform I/O; a read
// during an in-flight refresh sees the previous value.
type RateCache struct {
	source    RateSource
	logger    *slog.Logger
	metrics   *Metrics
	publisher events.EventPublisher

	bits   atomic.Uint64
	loaded atomic.Bool
}

// RateCacheDeps wires a RateCache. Source is required; the rest are optional.
type RateCacheDeps struct {
	Source    RateSource
	Logger    *slog.Logger
	Metrics   *Metrics
	Publisher events.EventPublisher
}

var _ RateProvider = (*RateCache)(nil)

// NewRateCache creates an empty cache that serves DefaultPlatformFeeRate
// until the first successful Refresh.
func NewRateCache(deps RateCacheDeps) (*RateCache, error) {
	if deps.Source == nil {
		return nil, errors.New("rate cache: source is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RateCache{
		source:    deps.Source,
		logger:    logger,
		metrics:   deps.Metrics,
		publisher: deps.Publisher,
	}, nil
}

// Get returns the cached rate, or DefaultPlatformFeeRate if no refresh has
// succeeded yet.
func (c *RateCache) Get() float64 {
	if !c.loaded.Load() {
		return DefaultPlatformFeeRate
	}
	return math.Float64frombits(c.bits.Load())
}

// Refresh fetches the rate from the source. On success the cache is updated
// and the new rate returned. On failure a warning is logged, the cached value
// is left untouched and DefaultPlatformFeeRate is returned. Refresh never
// fails the caller.
func (c *RateCache) Refresh(ctx context.Context) float64 {
	rate, err := c.source.FetchPlatformFeeRate(ctx)
	if err != nil {
		c.metrics.observeRateFetch(false, 0)
		c.logger.Warn("platform fee rate fetch failed, using fallback",
			"error", err,
			"fallback_rate", DefaultPlatformFeeRate,
			"cached_rate", c.Get(),
		)
		return DefaultPlatformFeeRate
	}

	previous := c.Get()
	c.bits.Store(math.Float64bits(rate))
	c.loaded.Store(true)
	c.metrics.observeRateFetch(true, rate)

	c.logger.Debug("platform fee rate refreshed",
		"platform_fee_rate", rate,
		"previous_rate", previous,
	)

	if previous != rate {
		c.publishRefreshed(ctx, previous, rate)
	}
	return rate
}

func (c *RateCache) publishRefreshed(ctx context.Context, previous, current float64) {
	if c.publisher == nil {
		return
	}
	evt, err := events.NewEvent(
		events.EventPlatformFeeRateRefreshed,
		events.AggregatePlatformFeeRate,
		"platform_fee_rate",
		events.PlatformFeeRateRefreshedData{Previous: previous, Current: current},
	)
	if err != nil {
		c.logger.Error("failed to build rate refreshed event", "error", err)
		return
	}
	if err := c.publisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("failed to publish rate refreshed event", "error", err, "event_id", evt.ID)
	}
}
