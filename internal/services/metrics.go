package services

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	forwardCounter    metric.Int64Counter
	upstreamHistogram metric.Float64Histogram
	errorCounter      metric.Int64Counter
)

// InitMetrics registers custom OTel metric instruments for the service
// bindings. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("services")

	var err error

	forwardCounter, err = meter.Int64Counter("bridge.services.forwarded.total",
		metric.WithDescription("Total number of service calls forwarded upstream"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("creating forward counter: %w", err)
	}

	upstreamHistogram, err = meter.Float64Histogram("bridge.upstream.duration",
		metric.WithDescription("Duration of upstream round-trips in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 500, 1000, 5000),
	)
	if err != nil {
		return fmt.Errorf("creating upstream histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("bridge.services.errors.total",
		metric.WithDescription("Total number of failed service calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
