package social

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/models"
)

func countRows(t *testing.T, e *env, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func TestLikeTwiceStoresOneLike(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	fan, author := e.user(t, "fan"), e.user(t, "author")
	post := e.postAt(t, author, time.Second, "P1")

	res, err := e.engagement.Like(ctx, fan, post)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikesCount)
	assert.Equal(t, fan, res.Like.UserID)

	_, err = e.engagement.Like(ctx, fan, post)
	assert.ErrorIs(t, err, models.ErrAlreadyLiked)

	n, err := e.store.CountLikes(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(1), countRows(t, e, &models.Notification{}), "the rejected like notifies nobody")
}

func TestLikeNotifiesAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1, u2 := e.user(t, "u1"), e.user(t, "u2")
	p1 := e.postAt(t, u2, time.Second, "P1")

	_, err := e.engagement.Like(ctx, u1, p1)
	require.NoError(t, err)

	var notes []models.Notification
	require.NoError(t, e.db.Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, u2, notes[0].RecipientID)
	assert.Equal(t, u1, notes[0].ActorID)
	assert.Equal(t, models.VerbLiked, notes[0].Verb)
	assert.Equal(t, models.PostTarget(p1), notes[0].Target)
	assert.False(t, notes[0].IsRead)
}

func TestLikeOwnPostDoesNotNotify(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := e.user(t, "u1")
	own := e.postAt(t, u1, time.Second, "mine")

	res, err := e.engagement.Like(ctx, u1, own)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikesCount)
	assert.Zero(t, countRows(t, e, &models.Notification{}))
}

func TestLikeMissingPost(t *testing.T) {
	e := newEnv(t)
	_, err := e.engagement.Like(context.Background(), e.user(t, "u1"), 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, countRows(t, e, &models.Like{}))
}

func TestUnlikeNeverLiked(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	fan, other, author := e.user(t, "fan"), e.user(t, "other"), e.user(t, "author")
	post := e.postAt(t, author, time.Second, "P1")

	_, err := e.engagement.Like(ctx, other, post)
	require.NoError(t, err)

	assert.ErrorIs(t, e.engagement.Unlike(ctx, fan, post), models.ErrNotLiked)

	n, err := e.store.CountLikes(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUnlikeRemovesLikeAndNotification(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	fan, author := e.user(t, "fan"), e.user(t, "author")
	post := e.postAt(t, author, time.Second, "P1")

	_, err := e.engagement.Like(ctx, fan, post)
	require.NoError(t, err)
	require.NoError(t, e.engagement.Unlike(ctx, fan, post))

	assert.Zero(t, countRows(t, e, &models.Like{}))
	assert.Zero(t, countRows(t, e, &models.Notification{}))
	assert.ErrorIs(t, e.engagement.Unlike(ctx, fan, post), models.ErrNotLiked)

	res, err := e.engagement.Like(ctx, fan, post)
	require.NoError(t, err, "liking again after unlike is allowed")
	assert.Equal(t, int64(1), res.LikesCount)
}

func TestConcurrentLikesRecordExactlyOne(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	fan, author := e.user(t, "fan"), e.user(t, "author")
	post := e.postAt(t, author, time.Second, "P1")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		others    []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.engagement.Like(ctx, fan, post)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, models.ErrAlreadyLiked):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, int64(1), countRows(t, e, &models.Like{}))
	assert.Equal(t, int64(1), countRows(t, e, &models.Notification{}))
}

func TestCommentNotifiesPostAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author, reader := e.user(t, "author"), e.user(t, "reader")
	post := e.postAt(t, author, time.Second, "P1")

	c, err := e.engagement.Comment(ctx, reader, post, "great")
	require.NoError(t, err)
	assert.Equal(t, "reader", c.Author.Username)

	_, err = e.engagement.Comment(ctx, author, post, "thanks")
	require.NoError(t, err)

	var notes []models.Notification
	require.NoError(t, e.db.Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, author, notes[0].RecipientID)
	assert.Equal(t, models.VerbCommented, notes[0].Verb)
	assert.Equal(t, models.CommentTarget(c.ID), notes[0].Target)

	_, err = e.engagement.Comment(ctx, reader, 999, "lost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
