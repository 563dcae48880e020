package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"socialfeed/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	slowRequest     = 2 * time.Second
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogging tags each request with an id, puts a request-scoped logger
// in its context and records the outcome once the handler returns.
func (api *API) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		entry := api.logger.WithField("request_id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logging.WithEntry(r.Context(), entry)))

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		duration := time.Since(start)
		api.metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(duration.Seconds())

		fields := entry.WithFields(logrus.Fields{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duration":  duration,
			"remote_ip": r.RemoteAddr,
		})
		if duration > slowRequest {
			fields.Warn("Slow request detected")
		} else {
			fields.Info("Request completed")
		}
	})
}
