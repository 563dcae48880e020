// Package api exposes the social services over HTTP with gorilla/mux.
package api

import (
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"socialfeed/internal/config"
	"socialfeed/internal/metrics"
	"socialfeed/internal/social"
)

type API struct {
	accounts      *social.Accounts
	relationships *social.Relationships
	engagement    *social.Engagement
	feed          *social.FeedComposer
	notifications *social.Notifications
	posts         *social.Posts
	sessions      sessions.Store
	metrics       *metrics.Metrics
	logger        *logrus.Logger
	pages         config.APIConfig
}

// Deps lists everything the handlers need.
type Deps struct {
	Accounts      *social.Accounts
	Relationships *social.Relationships
	Engagement    *social.Engagement
	Feed          *social.FeedComposer
	Notifications *social.Notifications
	Posts         *social.Posts
	Sessions      sessions.Store
	Metrics       *metrics.Metrics
	Logger        *logrus.Logger
	Pages         config.APIConfig
}

func New(d Deps) *API {
	return &API{
		accounts:      d.Accounts,
		relationships: d.Relationships,
		engagement:    d.Engagement,
		feed:          d.Feed,
		notifications: d.Notifications,
		posts:         d.Posts,
		sessions:      d.Sessions,
		metrics:       d.Metrics,
		logger:        d.Logger,
		pages:         d.Pages,
	}
}
