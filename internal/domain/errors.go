package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrSwipeNotFound      = errors.New("swipe not found")
	ErrSwipeAlreadyExists = errors.New("swipe already exists")
	ErrCannotSwipeSelf    = errors.New("cannot swipe yourself")
	ErrIncompleteProfile  = errors.New("profile is incomplete")
	ErrEmailAlreadyTaken  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrCollaboratorDown   = errors.New("collaborator unavailable")
)
