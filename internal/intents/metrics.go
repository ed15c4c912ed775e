package intents

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	handledCounter metric.Int64Counter
	errorCounter   metric.Int64Counter
)

// InitMetrics registers custom OTel metric instruments for the intent
// bindings. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("intents")

	var err error

	handledCounter, err = meter.Int64Counter("bridge.intents.handled.total",
		metric.WithDescription("Total number of intents answered with speech"),
		metric.WithUnit("{intent}"),
	)
	if err != nil {
		return fmt.Errorf("creating handled counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("bridge.intents.errors.total",
		metric.WithDescription("Total number of failed intents"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
