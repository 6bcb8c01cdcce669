package middleware

import (
	"net/http"
	"time"

	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request and records it in m. The route
// label is the chi pattern, so /api/todos/{id} is one series, not one per id.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, status, elapsed)

			reqID := chimw.GetReqID(r.Context())
			switch {
			case status >= 500:
				log.Error("%s %s %d %s req=%s", r.Method, r.URL.Path, status, elapsed, reqID)
			case status >= 400:
				log.Warn("%s %s %d %s req=%s", r.Method, r.URL.Path, status, elapsed, reqID)
			default:
				log.Info("%s %s %d %s req=%s", r.Method, r.URL.Path, status, elapsed, reqID)
			}
		})
	}
}
