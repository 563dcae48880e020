package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialfeed/internal/logging"
	"socialfeed/internal/models"
)

func (api *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context(), api.logger).WithError(err).Warn("Failed to encode response")
	}
}

func (api *API) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	api.writeJSON(w, r, status, map[string]interface{}{
		"status":    status,
		"error_msg": msg,
	})
}

// errorStatus maps service errors to HTTP status codes and client messages.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrSelfRelation):
		return http.StatusBadRequest, models.ErrSelfRelation.Error()
	case errors.Is(err, models.ErrAlreadyFollowing):
		return http.StatusConflict, models.ErrAlreadyFollowing.Error()
	case errors.Is(err, models.ErrAlreadyLiked):
		return http.StatusConflict, models.ErrAlreadyLiked.Error()
	case errors.Is(err, models.ErrUsernameTaken):
		return http.StatusConflict, models.ErrUsernameTaken.Error()
	case errors.Is(err, models.ErrNotFollowing):
		return http.StatusNotFound, models.ErrNotFollowing.Error()
	case errors.Is(err, models.ErrNotLiked):
		return http.StatusNotFound, models.ErrNotLiked.Error()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, models.ErrForbidden.Error()
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, models.ErrInvalidCredentials.Error()
	default:
		return http.StatusInternalServerError, "An error occurred."
	}
}

// fail reports err to the client, logs it and counts it under path.
func (api *API) fail(w http.ResponseWriter, r *http.Request, path string, err error) {
	status, msg := errorStatus(err)
	log := logging.FromContext(r.Context(), api.logger).WithError(err).WithField("path", path)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed")
	} else {
		log.Warn(msg)
		api.metrics.BadRequests.WithLabelValues(path).Inc()
	}
	api.writeError(w, r, status, msg)
}

// badRequest answers 400 with msg and counts it under path.
func (api *API) badRequest(w http.ResponseWriter, r *http.Request, path, msg string) {
	logging.FromContext(r.Context(), api.logger).WithField("path", path).Warn(msg)
	api.metrics.BadRequests.WithLabelValues(path).Inc()
	api.writeError(w, r, http.StatusBadRequest, msg)
}

func (api *API) ok(path string) {
	api.metrics.SuccessfulRequests.WithLabelValues(path).Inc()
}
