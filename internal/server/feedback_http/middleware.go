package feedback_http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback_service/pkg/logger"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func NewLoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			traceID, err := uuid.NewV7()
			if err != nil {
				traceID = uuid.New()
			}

			r.Header.Set("X-Trace-Id", traceID.String())
			w.Header().Set("X-Trace-Id", traceID.String())

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			log.Info("request completed",
				zap.String("trace_id", traceID.String()),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
