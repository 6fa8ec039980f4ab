// Package render writes JSON responses and the error envelope shared by
// handlers and middleware
package render

import (
	"encoding/json"
	"net/http"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"github.com/smartmealplanner/backend/pkg/logger"
	"go.uber.org/zap"
)

// Renderer writes responses. Server errors are logged and forwarded to the
// error reporter.
type Renderer struct {
	logger   *zap.Logger
	reporter *monitoring.ErrorReporter
}

// New creates a renderer. reporter may be nil.
func New(logger *zap.Logger, reporter *monitoring.ErrorReporter) *Renderer {
	return &Renderer{logger: logger.Named("http"), reporter: reporter}
}

// JSON writes data with the given status
func (rr *Renderer) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		rr.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// Error converts err to the application error envelope
func (rr *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternalError("").WithCause(err)
	}
	status := appErr.StatusCode()

	switch status {
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
	case http.StatusTooManyRequests:
		if secs, ok := appErr.Metadata["retry_after_seconds"].(int); ok {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
	}

	requestID := chimiddleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		logger.WithRequest(r.Context(), rr.logger).Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
		if rr.reporter != nil {
			rr.reporter.CaptureError(r.Context(), err, r)
		}
	}

	rr.JSON(w, status, apperrors.ToErrorResponse(appErr, requestID))
}
