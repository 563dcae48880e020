package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socialfeed/internal/auth"
)

// Router wires every endpoint. Reads of users, posts and comments are
// public; everything else requires a caller.
func (api *API) Router(authn *auth.Authenticator, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()
	r.Use(api.requestLogging, authn.Identify)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/healthz", api.HealthHandler).Methods("GET")

	r.HandleFunc("/register", api.RegisterHandler).Methods("POST")
	r.HandleFunc("/login", api.LoginHandler).Methods("POST")
	r.HandleFunc("/logout", api.LogoutHandler).Methods("POST")

	r.Handle("/profile", protect(api.GETProfileHandler)).Methods("GET")
	r.Handle("/profile", protect(api.PATCHProfileHandler)).Methods("PATCH")
	r.HandleFunc("/users/{userId:[0-9]+}", api.GETUserHandler).Methods("GET")
	r.HandleFunc("/users/{userId:[0-9]+}/followers", api.GETFollowersHandler).Methods("GET")
	r.HandleFunc("/users/{userId:[0-9]+}/following", api.GETFollowingHandler).Methods("GET")
	r.HandleFunc("/users/{userId:[0-9]+}/isfollowing/{otherId:[0-9]+}", api.GETIsFollowingHandler).Methods("GET")

	r.Handle("/follow/{userId:[0-9]+}", protect(api.POSTFollowHandler)).Methods("POST")
	r.Handle("/follow/{userId:[0-9]+}", protect(api.DELETEFollowHandler)).Methods("DELETE")

	r.HandleFunc("/posts", api.GETPostsHandler).Methods("GET")
	r.Handle("/posts", protect(api.POSTPostHandler)).Methods("POST")
	r.HandleFunc("/posts/{postId:[0-9]+}", api.GETPostHandler).Methods("GET")
	r.Handle("/posts/{postId:[0-9]+}", protect(api.PATCHPostHandler)).Methods("PATCH")
	r.Handle("/posts/{postId:[0-9]+}", protect(api.DELETEPostHandler)).Methods("DELETE")
	r.HandleFunc("/posts/{postId:[0-9]+}/comments", api.GETCommentsHandler).Methods("GET")
	r.Handle("/posts/{postId:[0-9]+}/comments", protect(api.POSTCommentHandler)).Methods("POST")
	r.Handle("/posts/{postId:[0-9]+}/comments/{commentId:[0-9]+}", protect(api.PATCHCommentHandler)).Methods("PATCH")
	r.Handle("/posts/{postId:[0-9]+}/comments/{commentId:[0-9]+}", protect(api.DELETECommentHandler)).Methods("DELETE")
	r.Handle("/posts/{postId:[0-9]+}/like", protect(api.POSTLikeHandler)).Methods("POST")
	r.Handle("/posts/{postId:[0-9]+}/like", protect(api.DELETELikeHandler)).Methods("DELETE")

	r.Handle("/feed", protect(api.GETFeedHandler)).Methods("GET")
	r.Handle("/notifications", protect(api.GETNotificationsHandler)).Methods("GET")
	r.Handle("/notifications/unread_count", protect(api.GETUnreadCountHandler)).Methods("GET")

	return r
}

func protect(h http.HandlerFunc) http.Handler {
	return auth.RequireUser(h)
}

func (api *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// caller returns the authenticated user id, or 0 for anonymous requests.
func caller(r *http.Request) uint {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}
