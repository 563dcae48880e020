package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialfeed/internal/clock"
	"socialfeed/internal/database/dbtest"
	"socialfeed/internal/models"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*Store, *clock.StubClock) {
	t.Helper()
	clk := clock.NewStubClock(epoch)
	return New(dbtest.Open(t), clk), clk
}

func mkUser(t *testing.T, s *Store, name string) uint {
	t.Helper()
	u := models.User{Username: name, PWHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	return u.ID
}

func mkPost(t *testing.T, s *Store, author uint, content string) uint {
	t.Helper()
	p := models.Post{AuthorID: author, Content: content}
	require.NoError(t, s.CreatePost(context.Background(), &p))
	return p.ID
}

func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"wrapped", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, true},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, false},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicate(tt.err))
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s, _ := newStore(t)
	mkUser(t, s, "alice")

	err := s.CreateUser(context.Background(), &models.User{Username: "alice", PWHash: "x"})
	assert.ErrorIs(t, err, models.ErrUsernameTaken)

	_, err = s.UserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFollowEdges(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	alice, bob := mkUser(t, s, "alice"), mkUser(t, s, "bob")

	require.NoError(t, s.AddFollow(ctx, alice, bob))
	assert.ErrorIs(t, s.AddFollow(ctx, alice, bob), models.ErrAlreadyFollowing)

	ok, err := s.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)

	followers, following, err := s.FollowCounts(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)
	assert.Equal(t, int64(0), following)

	require.NoError(t, s.RemoveFollow(ctx, alice, bob))
	assert.ErrorIs(t, s.RemoveFollow(ctx, alice, bob), models.ErrNotFollowing)
}

func TestListPostsPagination(t *testing.T) {
	s, clk := newStore(t)
	ctx := context.Background()
	alice := mkUser(t, s, "alice")
	bob := mkUser(t, s, "bob")

	var ids []uint
	for i := 0; i < 5; i++ {
		clk.Advance(time.Minute)
		ids = append(ids, mkPost(t, s, alice, fmt.Sprintf("alice %d", i)))
	}
	mkPost(t, s, bob, "bob says hello")

	posts, total, err := s.ListPosts(ctx, PostFilter{AuthorID: alice, Page: Page{Number: 2, Size: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, posts, 2)
	assert.Equal(t, ids[2], posts[0].ID)
	assert.Equal(t, ids[1], posts[1].ID)

	posts, total, err = s.ListPosts(ctx, PostFilter{Query: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "bob", posts[0].Author.Username)

	posts, _, err = s.ListPosts(ctx, PostFilter{Page: Page{Number: 0, Size: 0}})
	require.NoError(t, err)
	assert.Len(t, posts, 6)
}

func TestLikeCountsAndLikedBy(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	alice, bob := mkUser(t, s, "alice"), mkUser(t, s, "bob")
	p1, p2 := mkPost(t, s, alice, "one"), mkPost(t, s, alice, "two")

	require.NoError(t, s.CreateLike(ctx, &models.Like{UserID: alice, PostID: p1}))
	require.NoError(t, s.CreateLike(ctx, &models.Like{UserID: bob, PostID: p1}))
	assert.ErrorIs(t, s.CreateLike(ctx, &models.Like{UserID: bob, PostID: p1}), models.ErrAlreadyLiked)

	counts, err := s.LikeCounts(ctx, []uint{p1, p2})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{p1: 2}, counts)

	liked, err := s.LikedBy(ctx, bob, []uint{p1, p2})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{p1: true}, liked)

	empty, err := s.LikeCounts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.ErrorIs(t, s.DeleteLike(ctx, alice, p2), models.ErrNotLiked)
}

func TestCreateNotificationRejectsBadTarget(t *testing.T) {
	s, _ := newStore(t)
	alice, bob := mkUser(t, s, "alice"), mkUser(t, s, "bob")

	err := s.CreateNotification(context.Background(), &models.Notification{
		RecipientID: alice,
		ActorID:     bob,
		Verb:        models.VerbLiked,
		Target:      models.Target{Kind: "video", EntityID: 1},
	})
	assert.Error(t, err)
}

func TestListAndMarkReadSnapshot(t *testing.T) {
	s, clk := newStore(t)
	ctx := context.Background()
	alice, bob := mkUser(t, s, "alice"), mkUser(t, s, "bob")
	post := mkPost(t, s, alice, "hi")

	note := func() {
		clk.Advance(time.Second)
		require.NoError(t, s.CreateNotification(ctx, &models.Notification{
			RecipientID: alice,
			ActorID:     bob,
			Verb:        models.VerbLiked,
			Target:      models.PostTarget(post),
		}))
	}
	note()
	note()

	notes, marked, err := s.ListAndMarkRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)
	require.Len(t, notes, 2)
	assert.True(t, notes[0].ID > notes[1].ID)
	assert.Equal(t, "bob", notes[0].Actor.Username)
	for _, n := range notes {
		assert.False(t, n.IsRead)
	}

	note()
	unread, err := s.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	notes, marked, err = s.ListAndMarkRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)
	require.Len(t, notes, 3)
	assert.False(t, notes[0].IsRead)
	assert.True(t, notes[1].IsRead)
	assert.True(t, notes[2].IsRead)

	n, err := s.DeleteNotifications(ctx, alice, bob, models.VerbLiked, models.PostTarget(post))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestListPostsSearchIsLiteralAndCaseInsensitive(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	alice := mkUser(t, s, "alice")
	percent := mkPost(t, s, alice, "100% done")
	mkPost(t, s, alice, "100 done")
	under := mkPost(t, s, alice, "snake_case names")
	mkPost(t, s, alice, "snakeXcase names")
	shout := mkPost(t, s, alice, "HELLO there")

	tests := []struct {
		query string
		want  []uint
	}{
		{"%", []uint{percent}},
		{"100%", []uint{percent}},
		{"snake_case", []uint{under}},
		{"hello", []uint{shout}},
		{"There", []uint{shout}},
		{`\`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			posts, total, err := s.ListPosts(ctx, PostFilter{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			var got []uint
			for _, p := range posts {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
