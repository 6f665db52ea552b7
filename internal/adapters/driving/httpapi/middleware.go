package httpapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request counts and latency per route template.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(elapsed.Seconds())
		logger.Debug("%s %s %d (%s)", r.Method, r.URL.RequestURI(), rec.status, elapsed.Round(time.Millisecond))
	})
}

// withCORS serves the allowed origins with CORS headers. An empty list
// disables CORS. A wildcard origin is never combined with credentials.
func withCORS(allowed []string, next http.Handler) http.Handler {
	if len(allowed) == 0 {
		return next
	}
	opts := []handlers.CORSOption{
		handlers.AllowedOrigins(allowed),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.MaxAge(600),
		handlers.OptionStatusCode(http.StatusNoContent),
	}
	if slices.Contains(allowed, "*") {
		logger.Warn("cors: any origin allowed, credentials disabled")
	} else {
		opts = append(opts, handlers.AllowCredentials())
	}
	return handlers.CORS(opts...)(next)
}

// normaliseOrigins trims entries and drops trailing slashes.
func normaliseOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}
