package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/vipinshyam/math-tools-bridge/internal/args"
	"github.com/vipinshyam/math-tools-bridge/internal/bridge"
	"github.com/vipinshyam/math-tools-bridge/internal/handlers"
	"github.com/vipinshyam/math-tools-bridge/internal/intents"
	"github.com/vipinshyam/math-tools-bridge/internal/observability"
	"github.com/vipinshyam/math-tools-bridge/internal/services"
	"github.com/vipinshyam/math-tools-bridge/internal/upstream"
)

func listServices(m *bridge.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]any{
			"services": m.Current().Services.Names(),
		})
	}
}

// callService dispatches POST /services/{name}. The upstream result is not
// relayed: callers only see success or failure.
func callService(m *bridge.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		name := chi.URLParam(r, "name")

		call, err := decodeCall(r)
		if err != nil {
			writeFailure(ctx, w, name, "invalid request body", err, http.StatusBadRequest)
			return
		}

		if err := m.Current().Services.Invoke(ctx, name, call); err != nil {
			writeFailure(ctx, w, name, err.Error(), err, failureStatus(err))
			return
		}

		handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func listIntents(m *bridge.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]any{
			"intents": m.Current().Intents.Types(),
		})
	}
}

// callIntent dispatches POST /intents/{type} and relays the speech and card.
func callIntent(m *bridge.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		intentType := chi.URLParam(r, "type")

		slots, err := decodeCall(r)
		if err != nil {
			writeFailure(ctx, w, intentType, "invalid request body", err, http.StatusBadRequest)
			return
		}

		resp, err := m.Current().Intents.Handle(ctx, intentType, slots)
		if err != nil {
			writeFailure(ctx, w, intentType, err.Error(), err, failureStatus(err))
			return
		}

		handlers.WriteJSON(w, http.StatusOK, resp)
	}
}

// decodeCall reads the JSON argument object. An empty body is allowed so
// operations with only optional arguments can be called bare.
func decodeCall(r *http.Request) (map[string]any, error) {
	call := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return call, nil
}

// failureStatus maps bridge errors onto HTTP statuses: bad arguments are the
// caller's fault, unknown names are not found, upstream failures are relayed
// as a bad gateway.
func failureStatus(err error) int {
	var missing *args.MissingFieldError
	var invalid *args.ValidationError
	var up *upstream.Error

	switch {
	case errors.Is(err, services.ErrUnknownService), errors.Is(err, intents.ErrUnknownIntent):
		return http.StatusNotFound
	case errors.As(err, &missing), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &up):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeFailure(ctx context.Context, w http.ResponseWriter, opName, msg string, err error, status int) {
	span := trace.SpanFromContext(ctx)
	logger := observability.LoggerWithTrace(ctx)
	observability.RecordError(ctx, span, logger, opName, msg, err, status, w)
}
