package services

import (
	"errors"
	"fmt"

	"github.com/anonto42/petsocial/backend/internal/repositories"
)

// Business-rule errors. Input errors are reported as *validators.ValidationError.
var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("user not authorized")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post has not yet been liked")
)

// translate maps repository errors onto the service taxonomy and wraps anything else
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrAlreadyLiked):
		return ErrAlreadyLiked
	case errors.Is(err, repositories.ErrNotLiked):
		return ErrNotLiked
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
