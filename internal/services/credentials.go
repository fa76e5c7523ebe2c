package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/repositories"
	"github.com/anonto42/petsocial/backend/validators"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore owns user identity records and password checks
type CredentialStore struct {
	users repositories.UserRepository
	cost  int
}

// NewCredentialStore creates a CredentialStore hashing with bcrypt.DefaultCost
func NewCredentialStore(users repositories.UserRepository) *CredentialStore {
	return &CredentialStore{users: users, cost: bcrypt.DefaultCost}
}

// Register validates the request, rejects taken emails and stores the user with a bcrypt hash
func (s *CredentialStore) Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, validators.NewValidationError("password", "password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashedPassword),
		ProfileImage: req.ProfileImage,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// The unique index catches a registration racing the lookup above
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user owning email when password matches its hash
func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID returns the user with id
func (s *CredentialStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, translate("get user", err)
	}
	return user, nil
}

// CompactUsers returns the public view of every known user in ids
func (s *CredentialStore) CompactUsers(ctx context.Context, ids []uint) (map[uint]models.UserCompact, error) {
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	out := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		out[users[i].ID] = users[i].ToCompact()
	}
	return out, nil
}

// LinkFirebase attaches a verified Firebase identity to the local user registered with email.
// Users are never created here. An unverified email, an unknown email, or a user already
// linked to another Firebase UID is rejected.
func (s *CredentialStore) LinkFirebase(ctx context.Context, firebaseUID, email string, emailVerified bool) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("lookup user by firebase uid: %w", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailVerified {
		return nil, ErrUnauthenticated
	}
	user, err = s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if user.FirebaseUID != nil && *user.FirebaseUID != firebaseUID {
		return nil, ErrUnauthenticated
	}

	user.FirebaseUID = &firebaseUID
	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("link firebase uid: %w", err)
	}
	return user, nil
}

// ResolveFirebaseUID returns the id of the local user linked to firebaseUID
func (s *CredentialStore) ResolveFirebaseUID(ctx context.Context, firebaseUID string) (uint, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, fmt.Errorf("lookup user by firebase uid: %w", err)
	}
	return user.ID, nil
}
