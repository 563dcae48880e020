// Package models holds the gorm-mapped entities shared by the stores,
// services and HTTP handlers.
package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254;not null;default:''" json:"email"`
	PWHash    string    `gorm:"not null" json:"-"`
	Bio       string    `gorm:"size:500;not null;default:''" json:"bio"`
	AvatarURL string    `gorm:"size:1024;not null;default:''" json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Follower is a directed follow edge: Who follows Whom.
type Follower struct {
	WhoID     uint      `gorm:"primaryKey;autoIncrement:false;check:chk_followers_not_self,who_id <> whom_id"`
	Who       User      `gorm:"foreignKey:WhoID;constraint:OnDelete:CASCADE"`
	WhomID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Whom      User      `gorm:"foreignKey:WhomID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index:idx_posts_author_created,priority:1" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Title     string    `gorm:"size:255;not null;default:''" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	MediaURL  string    `gorm:"size:1024;not null;default:''" json:"media_url,omitempty"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_posts_author_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like is unique per (user, post); deleting the row is an unlike.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post,priority:1" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post,priority:2;index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is append-only apart from IsRead, which only moves false -> true.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"not null;index:idx_notifications_recipient_created,priority:1" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	ActorID     uint      `gorm:"not null" json:"actor_id"`
	Actor       User      `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
	Verb        string    `gorm:"size:255;not null" json:"verb"`
	Target      Target    `gorm:"embedded;embeddedPrefix:target_" json:"target"`
	CreatedAt   time.Time `gorm:"index:idx_notifications_recipient_created,priority:2" json:"created_at"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
}

const (
	VerbLiked     = "liked"
	VerbCommented = "commented"
)
