// Package middleware provides chi-compatible middleware for the API server
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	applog "github.com/smartmealplanner/backend/pkg/logger"
	"go.uber.org/zap"
)

// RequestContext echoes the request id and reports the handler time in
// X-Process-Time (seconds). It must run after chi's RequestID.
func RequestContext() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Request-ID", chimiddleware.GetReqID(r.Context()))
			next.ServeHTTP(&timedWriter{ResponseWriter: w, start: time.Now()}, r)
		})
	}
}

// timedWriter stamps X-Process-Time just before the headers are sent
type timedWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (tw *timedWriter) WriteHeader(code int) {
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(tw.start).Seconds()))
	}
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timedWriter) Write(b []byte) (int, error) {
	if !tw.wroteHeader {
		tw.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}

func (tw *timedWriter) Flush() {
	if f, ok := tw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Logger logs one line per request. When enabled is false requests pass
// through untouched.
func Logger(logger *zap.Logger, enabled bool) func(next http.Handler) http.Handler {
	logger = logger.Named("request")
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			}

			switch {
			case status >= 500:
				logger.Error("Server error", fields...)
			case status >= 400:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
		})
	}
}

// Recoverer turns a panic into a 500 and reports it
func Recoverer(rr *render.Renderer, reporter *monitoring.ErrorReporter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				applog.WithRequest(r.Context(), logger).Error("Panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				if reporter != nil {
					reporter.CapturePanic(rec, r)
				}
				rr.JSON(w, http.StatusInternalServerError, apperrors.ToErrorResponse(
					apperrors.NewInternalError(""), chimiddleware.GetReqID(r.Context()),
				))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
