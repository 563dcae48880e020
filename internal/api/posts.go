package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/logging"
	"socialfeed/internal/store"
)

const emptyContent = "Content cannot be blank"

func (api *API) GETPostsHandler(w http.ResponseWriter, r *http.Request) {
	filter := store.PostFilter{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Page:  api.page(r),
	}
	if raw := r.URL.Query().Get("author"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			api.badRequest(w, r, "posts", "author must be a user id")
			return
		}
		filter.AuthorID = uint(id)
	}

	views, total, err := api.posts.List(r.Context(), caller(r), filter)
	if err != nil {
		api.fail(w, r, "posts", err)
		return
	}
	api.ok("posts")
	api.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"count":   total,
		"results": postList(views),
	})
}

func (api *API) POSTPostHandler(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := decode(r, &req); err != nil {
		api.badRequest(w, r, "post_create", err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		api.badRequest(w, r, "post_create", emptyContent)
		return
	}

	author := caller(r)
	view, err := api.posts.Create(r.Context(), author, req.Title, req.Content, req.MediaURL)
	if err != nil {
		api.fail(w, r, "post_create", err)
		return
	}

	logging.FromContext(r.Context(), api.logger).WithFields(logrus.Fields{
		"user_id": author,
		"post_id": view.Post.ID,
	}).Info("Post created")
	api.metrics.PostsCreated.WithLabelValues("post_create").Inc()
	api.writeJSON(w, r, http.StatusCreated, postDetails(*view))
}

func (api *API) GETPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "post", err.Error())
		return
	}

	view, err := api.posts.Get(r.Context(), caller(r), postID)
	if err != nil {
		api.fail(w, r, "post", err)
		return
	}
	api.ok("post")
	api.writeJSON(w, r, http.StatusOK, postDetails(*view))
}

func (api *API) PATCHPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "post_update", err.Error())
		return
	}
	var req PostPatchRequest
	if err := decode(r, &req); err != nil {
		api.badRequest(w, r, "post_update", err.Error())
		return
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		api.badRequest(w, r, "post_update", emptyContent)
		return
	}

	view, err := api.posts.Update(r.Context(), caller(r), postID, store.PostUpdate{
		Title:    req.Title,
		Content:  req.Content,
		MediaURL: req.MediaURL,
	})
	if err != nil {
		api.fail(w, r, "post_update", err)
		return
	}
	api.ok("post_update")
	api.writeJSON(w, r, http.StatusOK, postDetails(*view))
}

func (api *API) DELETEPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "post_delete", err.Error())
		return
	}

	if err := api.posts.Delete(r.Context(), caller(r), postID); err != nil {
		api.fail(w, r, "post_delete", err)
		return
	}
	api.ok("post_delete")
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) GETCommentsHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "comments", err.Error())
		return
	}

	comments, err := api.posts.Comments(r.Context(), postID, api.page(r))
	if err != nil {
		api.fail(w, r, "comments", err)
		return
	}
	api.ok("comments")
	api.writeJSON(w, r, http.StatusOK, commentViews(comments))
}

func (api *API) POSTCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "comment_create", err.Error())
		return
	}
	var req CommentRequest
	if err := decode(r, &req); err != nil {
		api.badRequest(w, r, "comment_create", err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		api.badRequest(w, r, "comment_create", emptyContent)
		return
	}

	c, err := api.engagement.Comment(r.Context(), caller(r), postID, req.Content)
	if err != nil {
		api.fail(w, r, "comment_create", err)
		return
	}
	api.metrics.CommentsCreated.WithLabelValues("comment_create").Inc()
	api.writeJSON(w, r, http.StatusCreated, commentView(*c))
}

func (api *API) PATCHCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "comment_update", err.Error())
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		api.badRequest(w, r, "comment_update", err.Error())
		return
	}
	var req CommentRequest
	if err := decode(r, &req); err != nil {
		api.badRequest(w, r, "comment_update", err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		api.badRequest(w, r, "comment_update", emptyContent)
		return
	}

	c, err := api.posts.UpdateComment(r.Context(), caller(r), postID, commentID, req.Content)
	if err != nil {
		api.fail(w, r, "comment_update", err)
		return
	}
	api.ok("comment_update")
	api.writeJSON(w, r, http.StatusOK, commentView(*c))
}

func (api *API) DELETECommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		api.badRequest(w, r, "comment_delete", err.Error())
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		api.badRequest(w, r, "comment_delete", err.Error())
		return
	}

	if err := api.posts.DeleteComment(r.Context(), caller(r), postID, commentID); err != nil {
		api.fail(w, r, "comment_delete", err)
		return
	}
	api.ok("comment_delete")
	w.WriteHeader(http.StatusNoContent)
}
