package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rshade/ecofocus/internal/logging"
)

// TraceHeader carries the trace ID of a request. A client-supplied value is
// kept, otherwise a new ULID is generated.
const TraceHeader = "X-Trace-Id"

// traced attaches the request logger and trace ID to the request context.
func (s *Server) traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = logging.GetOrGenerateTraceID(ctx)
		}
		ctx = logging.ContextWithTraceID(ctx, traceID)
		ctx = s.logger.WithContext(ctx)

		w.Header().Set(TraceHeader, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrumented records request metrics and logs every request once it has
// been served. It runs inside the router so the route pattern is known.
func (s *Server) instrumented(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)

		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(elapsed.Seconds())

		ctx := r.Context()
		logging.FromContext(ctx).Debug().Ctx(ctx).
			Str("component", "server").
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", elapsed).
			Msg("request served")
	})
}
