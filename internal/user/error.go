package user

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNothingToUpdate = errors.New("no profile fields to update")
	ErrInvalidRole     = errors.New("invalid role")
)
