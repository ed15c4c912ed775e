// Package intents implements the voice intents of the bridge. Each intent
// extracts its typed slot values, forwards them to the upstream math API and
// renders the result as a spoken sentence plus a display card.
package intents

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the intent binding's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("intents")

// Card is the display summary shown alongside the spoken response.
type Card struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Response is what an intent produces on success. Failures never produce
// fallback speech; the error propagates to the caller instead.
type Response struct {
	Speech string `json:"speech"`
	Card   Card   `json:"card"`
}

// Handler resolves one intent type from its raw slot values.
type Handler func(ctx context.Context, slots map[string]any) (*Response, error)

// ErrUnknownIntent is returned by Handle for types nobody registered.
var ErrUnknownIntent = errors.New("unknown intent")

// Registry maps intent types to handlers. The intent set is fixed, so a
// duplicate type is a wiring bug and Register reports it as an error.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds an intent type to h.
func (r *Registry) Register(intentType string, h Handler) error {
	if _, ok := r.handlers[intentType]; ok {
		return fmt.Errorf("intent %s already registered", intentType)
	}
	r.handlers[intentType] = h
	return nil
}

// Handle dispatches the intent and records per-intent metrics and a span.
func (r *Registry) Handle(ctx context.Context, intentType string, slots map[string]any) (*Response, error) {
	h, ok := r.handlers[intentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntent, intentType)
	}

	ctx, span := tracer.Start(ctx, fmt.Sprintf("intents.%s", intentType),
		trace.WithAttributes(attribute.String("intent.type", intentType)),
	)
	defer span.End()

	attrs := metric.WithAttributes(attribute.String("intent", intentType))

	resp, err := h(ctx, slots)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "intent failed")
		errorCounter.Add(ctx, 1, attrs)
		return nil, err
	}

	handledCounter.Add(ctx, 1, attrs)
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// Types returns the registered intent types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
