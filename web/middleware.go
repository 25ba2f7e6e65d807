package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ezoic/perfindex/pkg/log"
)

// requestLogger logs one structured line per request once it completes.
func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []interface{}{
				log.MethodKey, r.Method,
				log.RouteKey, r.URL.Path,
				log.StatusKey, status,
				log.DurationMsKey, time.Since(start).Milliseconds(),
				log.RequestIDKey, middleware.GetReqID(r.Context()),
				"bytes", ww.BytesWritten(),
			}
			if status >= http.StatusInternalServerError {
				logger.Error("Request failed", fields...)
				return
			}
			logger.Debug("Request served", fields...)
		})
	}
}
