// Package services binds the named bridge operations to their upstream
// endpoints. Every operation name maps to exactly one endpoint for the
// lifetime of a registry; a repeated registration under the same name is a
// no-op rather than an overwrite, so a reload can never stack handler chains.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Handler executes one bridge operation against the upstream API. The
// upstream result is discarded: service calls are fire-and-forget.
type Handler func(ctx context.Context, call map[string]any) error

// ErrUnknownService is returned by Invoke for names nobody registered.
var ErrUnknownService = errors.New("unknown service")

// Registry maps operation names to handlers. Registration state is tracked
// in an explicit map so idempotency is observable: Register reports whether
// the name was newly bound. A registry is fully built before it serves
// traffic and is read-only afterwards, so no locking is needed.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds name to h. When name is already registered the existing
// binding is kept untouched and false is returned.
func (r *Registry) Register(name string, h Handler) bool {
	if _, ok := r.handlers[name]; ok {
		return false
	}
	r.handlers[name] = h
	return true
}

// Invoke dispatches a call to the handler registered under name.
func (r *Registry) Invoke(ctx context.Context, name string, call map[string]any) error {
	h, ok := r.handlers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownService, name)
	}
	return h(ctx, call)
}

// Names returns the registered operation names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
