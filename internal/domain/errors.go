package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound              = errors.New("user not found")
	ErrEmailTaken                = errors.New("email already registered")
	ErrInvalidRole               = errors.New("invalid role")
	ErrUploadFailed              = errors.New("image upload failed")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// Validation constants
const (
	MaxNameLength  = 255
	MaxEmailLength = 255
)
