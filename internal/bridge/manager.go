// Package bridge assembles the service and intent registries from one
// resolved configuration. Registries are built as an immutable snapshot;
// a configuration change produces a fresh snapshot that replaces the old
// one wholesale, so in-flight calls never observe a half-updated registry.
package bridge

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/vipinshyam/math-tools-bridge/internal/config"
	"github.com/vipinshyam/math-tools-bridge/internal/intents"
	"github.com/vipinshyam/math-tools-bridge/internal/observability"
	"github.com/vipinshyam/math-tools-bridge/internal/services"
	"github.com/vipinshyam/math-tools-bridge/internal/upstream"

	"go.uber.org/zap"
)

// ErrAlreadyStarted guards the single-instance rule: exactly one bridge may
// be active per process. Subsequent configuration changes go through Reload.
var ErrAlreadyStarted = errors.New("bridge already started")

// SetupError marks a non-fatal setup failure. Intent registration is the
// only locally recovered case: it is logged and setup continues so the
// services stay available even when the intents do not.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return "bridge setup: " + e.Err.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Snapshot is one fully built registry pair.
type Snapshot struct {
	Services *services.Registry
	Intents  *intents.Registry
}

// Manager owns the active snapshot and the shared upstream HTTP client.
// The client is reused across reloads; timeout and pooling policy live
// there, not in the registries.
type Manager struct {
	httpClient *http.Client
	started    atomic.Bool
	current    atomic.Pointer[Snapshot]
}

func NewManager(httpClient *http.Client) *Manager {
	return &Manager{httpClient: httpClient}
}

// Start builds the first snapshot from cfg. A second Start fails.
func (m *Manager) Start(cfg config.Config) error {
	if !m.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	m.current.Store(m.build(cfg))
	return nil
}

// Reload tears down the active registries by swapping in freshly built
// ones under the new configuration. Existing handlers are never mutated.
func (m *Manager) Reload(cfg config.Config) {
	m.current.Store(m.build(cfg))
}

// Current returns the active snapshot, or nil before Start.
func (m *Manager) Current() *Snapshot {
	return m.current.Load()
}

func (m *Manager) build(cfg config.Config) *Snapshot {
	client := upstream.NewClient(cfg.BaseURL, cfg.APIKey, m.httpClient)

	svc := services.NewRegistry()
	services.RegisterAll(svc, client)

	its := intents.NewRegistry()
	if err := intents.RegisterAll(its, client); err != nil {
		observability.Logger.Error("intent registration failed, continuing with services only",
			zap.Error(&SetupError{Err: err}),
		)
	}

	return &Snapshot{Services: svc, Intents: its}
}
