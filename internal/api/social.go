package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/logging"
)

func (api *API) POSTFollowHandler(w http.ResponseWriter, r *http.Request) {
	target, err := pathID(r, "userId")
	if err != nil {
		api.badRequest(w, r, "follow", err.Error())
		return
	}

	actor := caller(r)
	if err := api.relationships.Follow(r.Context(), actor, target); err != nil {
		api.fail(w, r, "follow", err)
		return
	}

	logging.FromContext(r.Context(), api.logger).WithFields(logrus.Fields{
		"user":   actor,
		"target": target,
	}).Info("User followed successfully")
	api.metrics.FollowRequests.WithLabelValues("follow").Inc()
	api.writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"follower_id": actor,
		"followee_id": target,
	})
}

func (api *API) DELETEFollowHandler(w http.ResponseWriter, r *http.Request) {
	target, err := pathID(r, "userId")
	if err != nil {
		api.badRequest(w, r, "unfollow", err.Error())
		return
	}

	actor := caller(r)
	if err := api.relationships.Unfollow(r.Context(), actor, target); err != nil {
		api.fail(w, r, "unfollow", err)
		return
	}

	logging.FromContext(r.Context(), api.logger).WithFields(logrus.Fields{
		"user":   actor,
		"target": target,
	}).Info("User unfollowed successfully")
	api.metrics.UnfollowRequests.WithLabelValues("unfollow").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) POSTLikeHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "like", err.Error())
		return
	}

	res, err := api.engagement.Like(r.Context(), caller(r), postID)
	if err != nil {
		api.fail(w, r, "like", err)
		return
	}

	api.metrics.LikeRequests.WithLabelValues("like").Inc()
	api.writeJSON(w, r, http.StatusCreated, map[string]int64{"likes_count": res.LikesCount})
}

func (api *API) DELETELikeHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "unlike", err.Error())
		return
	}

	if err := api.engagement.Unlike(r.Context(), caller(r), postID); err != nil {
		api.fail(w, r, "unlike", err)
		return
	}

	api.metrics.UnlikeRequests.WithLabelValues("unlike").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) GETFeedHandler(w http.ResponseWriter, r *http.Request) {
	views, err := api.feed.ComputeFeed(r.Context(), caller(r), api.page(r))
	if err != nil {
		api.fail(w, r, "feed", err)
		return
	}
	api.ok("feed")
	api.writeJSON(w, r, http.StatusOK, postList(views))
}

func (api *API) GETNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	notes, marked, err := api.notifications.ListAndMarkRead(r.Context(), caller(r))
	if err != nil {
		api.fail(w, r, "notifications", err)
		return
	}
	api.metrics.NotificationsRead.Add(float64(marked))
	api.ok("notifications")
	api.writeJSON(w, r, http.StatusOK, notificationViews(notes))
}

func (api *API) GETUnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	n, err := api.notifications.UnreadCount(r.Context(), caller(r))
	if err != nil {
		api.fail(w, r, "unread_count", err)
		return
	}
	api.ok("unread_count")
	api.writeJSON(w, r, http.StatusOK, map[string]int64{"unread_count": n})
}
