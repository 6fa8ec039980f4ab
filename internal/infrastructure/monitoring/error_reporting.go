package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// ErrorReporterConfig holds error reporting configuration
type ErrorReporterConfig struct {
	DSN         string
	Environment string
	Release     string
	SampleRate  float64
}

// ErrorReporter forwards server errors and panics to Sentry. With no DSN it
// only logs.
type ErrorReporter struct {
	hub    *sentry.Hub
	logger *zap.Logger
}

// NewErrorReporter creates an error reporter
func NewErrorReporter(config ErrorReporterConfig, logger *zap.Logger) (*ErrorReporter, error) {
	logger = logger.Named("error_reporter")
	if config.DSN == "" {
		logger.Info("Error reporting is disabled")
		return &ErrorReporter{logger: logger}, nil
	}

	sampleRate := config.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		TracesSampleRate: sampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sentry client: %w", err)
	}

	logger.Info("Error reporting initialized", zap.String("environment", config.Environment))
	return &ErrorReporter{
		hub:    sentry.NewHub(client, sentry.NewScope()),
		logger: logger,
	}, nil
}

// Enabled reports whether events are sent to Sentry
func (r *ErrorReporter) Enabled() bool {
	return r.hub != nil
}

// CaptureError reports err along with the request it happened in
func (r *ErrorReporter) CaptureError(ctx context.Context, err error, req *http.Request) {
	if r.hub == nil || err == nil {
		return
	}

	hub := r.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		if req != nil {
			scope.SetRequest(req)
		}
		if traceID := TraceIDFromContext(ctx); traceID != "" {
			scope.SetTag("trace_id", traceID)
		}
		hub.CaptureException(err)
	})
}

// CapturePanic reports a recovered panic value
func (r *ErrorReporter) CapturePanic(value interface{}, req *http.Request) {
	if r.hub == nil {
		return
	}

	hub := r.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		if req != nil {
			scope.SetRequest(req)
		}
		hub.Recover(value)
	})
}

// Flush waits for buffered events to be delivered
func (r *ErrorReporter) Flush(timeout time.Duration) bool {
	if r.hub == nil {
		return true
	}
	if !r.hub.Flush(timeout) {
		r.logger.Warn("Timed out flushing error events")
		return false
	}
	return true
}
