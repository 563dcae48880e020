package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.FollowRequests.WithLabelValues("follow").Inc()
	m.LikeRequests.WithLabelValues("like").Add(2)
	m.NotificationsRead.Add(3)
	m.RequestDuration.WithLabelValues("/feed", "GET").Observe(0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FollowRequests.WithLabelValues("follow")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LikeRequests.WithLabelValues("like")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.NotificationsRead))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["successful_follows"])
	assert.True(t, names["successful_likes"])
	assert.True(t, names["http_request_duration_seconds"])
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
