package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrSelfRelation       = errors.New("users cannot follow themselves")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("not following this user")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post not liked")
	ErrForbidden          = errors.New("only the author may change this resource")
	ErrUsernameTaken      = errors.New("the username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
