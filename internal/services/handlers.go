package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vipinshyam/math-tools-bridge/internal/args"
	"github.com/vipinshyam/math-tools-bridge/internal/observability"
	"github.com/vipinshyam/math-tools-bridge/internal/upstream"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the service binding's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("services")

// RegisterAll generates a forwarding handler for every catalog descriptor
// and registers it. newHandler binds each handler to its own descriptor
// copy, so every generated closure forwards to its own endpoint.
func RegisterAll(reg *Registry, client *upstream.Client) {
	for _, d := range Catalog() {
		reg.Register(d.Name, newHandler(d, client))
	}
}

// newHandler builds the forwarding handler for one descriptor.
func newHandler(d Descriptor, client *upstream.Client) Handler {
	return func(ctx context.Context, call map[string]any) error {
		ctx, span := tracer.Start(ctx, fmt.Sprintf("services.%s", d.Name),
			trace.WithAttributes(
				attribute.String("service.operation", d.Name),
				attribute.String("upstream.endpoint", d.Endpoint),
			),
		)
		defer span.End()

		attrs := metric.WithAttributes(attribute.String("operation", d.Name))

		payload, err := buildPayload(d, call)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid arguments")
			errorCounter.Add(ctx, 1, attrs)
			return err
		}

		start := time.Now()
		_, err = client.Post(ctx, d.Endpoint, payload)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upstream call failed")
			errorCounter.Add(ctx, 1, attrs)
			return err
		}

		forwardCounter.Add(ctx, 1, attrs)
		upstreamHistogram.Record(ctx, elapsed, attrs)

		span.AddEvent("forward.complete", trace.WithAttributes(
			attribute.Float64("duration_ms", elapsed),
		))
		span.SetStatus(codes.Ok, "")

		observability.LoggerWithTrace(ctx).Info("service call forwarded",
			zap.String("operation", d.Name),
			zap.String("endpoint", d.Endpoint),
			zap.Float64("duration_ms", elapsed),
		)

		// The envelope is dropped on purpose: the caller only learns about
		// failures, never about the computed result.
		return nil
	}
}

// buildPayload normalizes the raw call arguments into the JSON body for the
// descriptor's shape.
func buildPayload(d Descriptor, call map[string]any) (map[string]any, error) {
	switch d.Shape {
	case Binary:
		first, second := "a", "b"
		if len(d.Fields) == 2 {
			first, second = d.Fields[0], d.Fields[1]
		}
		a, err := args.Float(call, first)
		if err != nil {
			return nil, err
		}
		b, err := args.Float(call, second)
		if err != nil {
			return nil, err
		}
		return map[string]any{first: a, second: b}, nil

	case IntPair:
		a, err := args.Int(call, "a")
		if err != nil {
			return nil, err
		}
		b, err := args.Int(call, "b")
		if err != nil {
			return nil, err
		}
		return map[string]any{"a": a, "b": b}, nil

	case IntScalar:
		n, err := args.Int(call, "n")
		if err != nil {
			return nil, err
		}
		return map[string]any{"n": n}, nil

	case Values:
		values, err := args.Values(call["values"])
		if err != nil {
			return nil, err
		}
		payload := map[string]any{"values": values}
		for _, field := range d.Extra {
			if v, ok := call[field]; ok {
				payload[field] = v
			}
		}
		return payload, nil

	case Window:
		values, err := args.Values(call["values"])
		if err != nil {
			return nil, err
		}
		window, err := args.Int(call, "window")
		if err != nil {
			return nil, err
		}
		return map[string]any{"values": values, "window": window}, nil
	}

	return nil, fmt.Errorf("operation %s: unknown shape %d", d.Name, d.Shape)
}
