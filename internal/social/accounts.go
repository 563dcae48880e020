package social

import (
	"context"
	"errors"

	"socialfeed/internal/auth"
	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

type Accounts struct {
	store      *store.Store
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewAccounts(s *store.Store, tokens *auth.TokenManager, bcryptCost int) *Accounts {
	return &Accounts{store: s, tokens: tokens, bcryptCost: bcryptCost}
}

type Profile struct {
	User           models.User
	FollowersCount int64
	FollowingCount int64
}

// Registration is a new account. Bio and AvatarURL are optional.
type Registration struct {
	Username  string
	Email     string
	Password  string
	Bio       string
	AvatarURL string
}

// Register creates the account and returns it with a fresh bearer token.
func (a *Accounts) Register(ctx context.Context, reg Registration) (*models.User, string, error) {
	hash, err := auth.HashPassword(reg.Password, a.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Username:  reg.Username,
		Email:     reg.Email,
		PWHash:    hash,
		Bio:       reg.Bio,
		AvatarURL: reg.AvatarURL,
	}
	if err := a.store.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := a.tokens.Generate(u.ID, u.Username)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks the password and issues a token. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	u, err := a.store.UserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPasswordHash(password, u.PWHash) {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := a.tokens.Generate(u.ID, u.Username)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (a *Accounts) Profile(ctx context.Context, userID uint) (*Profile, error) {
	u, err := a.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, following, err := a.store.FollowCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: *u, FollowersCount: followers, FollowingCount: following}, nil
}

func (a *Accounts) UpdateProfile(ctx context.Context, userID uint, upd store.ProfileUpdate) (*Profile, error) {
	if _, err := a.store.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, err
	}
	return a.Profile(ctx, userID)
}
