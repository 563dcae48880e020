package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	PostsCreated       *prometheus.CounterVec
	CommentsCreated    *prometheus.CounterVec
	FollowRequests     *prometheus.CounterVec
	UnfollowRequests   *prometheus.CounterVec
	LikeRequests       *prometheus.CounterVec
	UnlikeRequests     *prometheus.CounterVec
	NotificationsRead  prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
}

// New creates the service metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx) HTTP requests",
			},
			[]string{"path"},
		),
		PostsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_post",
				Help: "Total number of successfully created posts",
			},
			[]string{"path"},
		),
		CommentsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_comment",
				Help: "Total number of successfully created comments",
			},
			[]string{"path"},
		),
		FollowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_follows",
				Help: "Total number of successfully sent follow requests",
			},
			[]string{"path"},
		),
		UnfollowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_unfollows",
				Help: "Total number of successfully sent unfollow requests",
			},
			[]string{"path"},
		),
		LikeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_likes",
				Help: "Total number of successfully recorded likes",
			},
			[]string{"path"},
		),
		UnlikeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_unlikes",
				Help: "Total number of successfully removed likes",
			},
			[]string{"path"},
		),
		NotificationsRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_marked_read",
				Help: "Total number of notifications transitioned to read",
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by route and method",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}

	reg.MustRegister(
		m.SuccessfulRequests,
		m.BadRequests,
		m.PostsCreated,
		m.CommentsCreated,
		m.FollowRequests,
		m.UnfollowRequests,
		m.LikeRequests,
		m.UnlikeRequests,
		m.NotificationsRead,
		m.RequestDuration,
	)

	return m
}
