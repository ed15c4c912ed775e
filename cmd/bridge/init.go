package main

import (
	"context"

	"github.com/vipinshyam/math-tools-bridge/internal/intents"
	"github.com/vipinshyam/math-tools-bridge/internal/observability"
	"github.com/vipinshyam/math-tools-bridge/internal/services"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := services.InitMetrics(); err != nil {
		return nil, err
	}

	if err := intents.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
