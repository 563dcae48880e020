package api

import (
	"time"

	"socialfeed/internal/models"
	"socialfeed/internal/social"
)

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type UserDetails struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
}

type CommentView struct {
	ID        uint        `json:"id"`
	PostID    uint        `json:"post_id"`
	Author    UserSummary `json:"author"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type PostDetails struct {
	ID           uint          `json:"id"`
	Author       UserSummary   `json:"author"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	MediaURL     string        `json:"media_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Comments     []CommentView `json:"comments"`
	CommentCount int           `json:"comment_count"`
	LikesCount   int64         `json:"likes_count"`
	HasLiked     bool          `json:"has_liked"`
}

type NotificationView struct {
	ID            uint      `json:"id"`
	ActorUsername string    `json:"actor_username"`
	Verb          string    `json:"verb"`
	TargetType    string    `json:"target_type"`
	TargetID      uint      `json:"target_id"`
	Timestamp     time.Time `json:"timestamp"`
	IsRead        bool      `json:"is_read"`
}

func summarize(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

// userDetails renders p; the email is only shown to its owner.
func userDetails(p *social.Profile, self bool) UserDetails {
	d := UserDetails{
		ID:             p.User.ID,
		Username:       p.User.Username,
		Bio:            p.User.Bio,
		AvatarURL:      p.User.AvatarURL,
		CreatedAt:      p.User.CreatedAt,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
	}
	if self {
		d.Email = p.User.Email
	}
	return d
}

func commentView(c models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    summarize(c.Author),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func commentViews(cs []models.Comment) []CommentView {
	out := make([]CommentView, len(cs))
	for i, c := range cs {
		out[i] = commentView(c)
	}
	return out
}

func postDetails(v social.PostView) PostDetails {
	return PostDetails{
		ID:           v.Post.ID,
		Author:       summarize(v.Post.Author),
		Title:        v.Post.Title,
		Content:      v.Post.Content,
		MediaURL:     v.Post.MediaURL,
		CreatedAt:    v.Post.CreatedAt,
		UpdatedAt:    v.Post.UpdatedAt,
		Comments:     commentViews(v.Post.Comments),
		CommentCount: len(v.Post.Comments),
		LikesCount:   v.LikesCount,
		HasLiked:     v.HasLiked,
	}
}

func postList(vs []social.PostView) []PostDetails {
	out := make([]PostDetails, len(vs))
	for i, v := range vs {
		out[i] = postDetails(v)
	}
	return out
}

func notificationViews(ns []models.Notification) []NotificationView {
	out := make([]NotificationView, len(ns))
	for i, n := range ns {
		out[i] = NotificationView{
			ID:            n.ID,
			ActorUsername: n.Actor.Username,
			Verb:          n.Verb,
			TargetType:    string(n.Target.Kind),
			TargetID:      n.Target.EntityID,
			Timestamp:     n.CreatedAt,
			IsRead:        n.IsRead,
		}
	}
	return out
}
