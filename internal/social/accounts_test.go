package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/auth"
	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, token, err := e.accounts.Register(ctx, Registration{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEmpty(t, token)
	assert.True(t, auth.CheckPasswordHash("s3cret", u.PWHash))

	_, _, err = e.accounts.Register(ctx, Registration{Username: "alice", Email: "other@example.com", Password: "x"})
	assert.ErrorIs(t, err, models.ErrUsernameTaken)

	logged, token, err := e.accounts.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotEmpty(t, token)

	_, _, err = e.accounts.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, _, err = e.accounts.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestProfileCountsAndUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b, c := e.user(t, "a"), e.user(t, "b"), e.user(t, "c")
	require.NoError(t, e.relationships.Follow(ctx, b, a))
	require.NoError(t, e.relationships.Follow(ctx, c, a))
	require.NoError(t, e.relationships.Follow(ctx, a, b))

	p, err := e.accounts.Profile(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.FollowersCount)
	assert.Equal(t, int64(1), p.FollowingCount)

	bio := "hello there"
	p, err = e.accounts.UpdateProfile(ctx, a, store.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, p.User.Bio)
	assert.Equal(t, "a@example.com", p.User.Email, "untouched fields survive")

	avatar := "https://cdn.example.com/a.png"
	p, err = e.accounts.UpdateProfile(ctx, a, store.ProfileUpdate{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, avatar, p.User.AvatarURL)
	assert.Equal(t, bio, p.User.Bio)

	_, err = e.accounts.Profile(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRegisterKeepsOptionalProfileFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, _, err := e.accounts.Register(ctx, Registration{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret",
		Bio:       "gardener",
		AvatarURL: "https://cdn.example.com/alice.png",
	})
	require.NoError(t, err)

	p, err := e.accounts.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "gardener", p.User.Bio)
	assert.Equal(t, "https://cdn.example.com/alice.png", p.User.AvatarURL)
}
