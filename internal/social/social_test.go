package social

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"socialfeed/internal/auth"
	"socialfeed/internal/clock"
	"socialfeed/internal/config"
	"socialfeed/internal/database/dbtest"
	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	db            *gorm.DB
	clock         *clock.StubClock
	store         *store.Store
	relationships *Relationships
	engagement    *Engagement
	feed          *FeedComposer
	notifications *Notifications
	accounts      *Accounts
	posts         *Posts
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.Open(t)
	clk := clock.NewStubClock(epoch)
	s := store.New(db, clk)

	tokens, err := auth.NewTokenManager(config.SecurityConfig{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)

	return &env{
		db:            db,
		clock:         clk,
		store:         s,
		relationships: NewRelationships(s),
		engagement:    NewEngagement(s),
		feed:          NewFeedComposer(s),
		notifications: NewNotifications(s),
		accounts:      NewAccounts(s, tokens, bcrypt.MinCost),
		posts:         NewPosts(s),
	}
}

func (e *env) user(t *testing.T, name string) uint {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", PWHash: "x"}
	require.NoError(t, e.store.CreateUser(context.Background(), &u))
	return u.ID
}

// postAt creates a post stamped offset after epoch.
func (e *env) postAt(t *testing.T, author uint, offset time.Duration, content string) uint {
	t.Helper()
	e.clock.SetNow(epoch.Add(offset))
	p := models.Post{AuthorID: author, Content: content}
	require.NoError(t, e.store.CreatePost(context.Background(), &p))
	return p.ID
}

func postIDs(views []PostView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.Post.ID
	}
	return ids
}
