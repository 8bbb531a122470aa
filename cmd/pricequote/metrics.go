package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const pushJob = "pricequote"

// pushMetrics replaces the pricequote group on the Pushgateway at url with
// everything gathered from g.
func pushMetrics(ctx context.Context, url string, g prometheus.Gatherer) error {
	if err := push.New(url, pushJob).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics: %w", err)
	}
	return nil
}
