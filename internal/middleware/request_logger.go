package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"softpet/internal/platform/logger"
)

// RequestLogger reemplaza chimw.Logger escribiendo por nuestro Logger.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := map[string]any{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      status,
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
				}
				if id := chimw.GetReqID(r.Context()); id != "" {
					fields["request_id"] = id
				}

				switch {
				case status >= 500:
					log.Error("http request", fields)
				case status >= 400:
					log.Warn("http request", fields)
				default:
					log.Info("http request", fields)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
