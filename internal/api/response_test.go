package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/logging"
	"socialfeed/internal/models"
)

func TestWriteJSONLogsEncodeFailuresThroughServiceLogger(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	api := &API{logger: logger}

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	rec := httptest.NewRecorder()
	api.writeJSON(rec, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Failed to encode response", hook.LastEntry().Message)
	assert.Error(t, hook.LastEntry().Data[logrus.ErrorKey].(error))
}

func TestWriteJSONUsesRequestEntry(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	api := &API{logger: logger}

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req = req.WithContext(logging.WithEntry(req.Context(), logger.WithField("request_id", "abc")))
	api.writeJSON(httptest.NewRecorder(), req, http.StatusOK, make(chan int))

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "abc", hook.LastEntry().Data["request_id"])
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrSelfRelation, http.StatusBadRequest},
		{models.ErrAlreadyFollowing, http.StatusConflict},
		{models.ErrAlreadyLiked, http.StatusConflict},
		{models.ErrUsernameTaken, http.StatusConflict},
		{models.ErrNotFollowing, http.StatusNotFound},
		{models.ErrNotLiked, http.StatusNotFound},
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got, _ := errorStatus(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}
