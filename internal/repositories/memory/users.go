// Package memory holds in-process repository implementations used for
// STORAGE=memory and tests. State is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/repositories"
)

type userRepo struct {
	mu     sync.RWMutex
	nextID uint
	byID   map[uint]models.User
}

// NewUserRepo returns an empty user store
func NewUserRepo() repositories.UserRepository {
	return &userRepo{
		nextID: 1,
		byID:   make(map[uint]models.User),
	}
}

func (r *userRepo) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflicts(*user) {
		return repositories.ErrDuplicateKey
	}
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.Email == email })
}

func (r *userRepo) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.findOne(func(u models.User) bool {
		return u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID
	})
}

func (r *userRepo) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	if r.conflicts(*user) {
		return repositories.ErrDuplicateKey
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *userRepo) findOne(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// conflicts mirrors the unique indexes on email and firebase_uid. Caller holds the lock.
func (r *userRepo) conflicts(user models.User) bool {
	for id, u := range r.byID {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return true
		}
		if u.FirebaseUID != nil && user.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return true
		}
	}
	return false
}
