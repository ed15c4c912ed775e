package observability

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises request error handling: records the error on the
// span, logs it with trace context, and writes a JSON error HTTP response.
// Error counting is left to the domain packages that own the instruments.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, opName, msg string, err error, status int, w http.ResponseWriter) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	logger.Error(msg,
		zap.String("operation", opName),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
