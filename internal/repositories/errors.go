package repositories

import "errors"

// Persistence-level errors shared by every repository implementation
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrAlreadyLiked = errors.New("post already liked by user")
	ErrNotLiked     = errors.New("post not liked by user")
)
