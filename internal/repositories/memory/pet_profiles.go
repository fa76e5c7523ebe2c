package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type petProfileRepo struct {
	mu     sync.RWMutex
	byUser map[uint]models.PetProfile
}

// NewPetProfileRepo returns an empty pet profile store keyed by owning user
func NewPetProfileRepo() repositories.PetProfileRepository {
	return &petProfileRepo{
		byUser: make(map[uint]models.PetProfile),
	}
}

func (r *petProfileRepo) GetProfilesByUser(ctx context.Context, userID uint) ([]models.PetProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PetProfile, 0, 1)
	if p, ok := r.byUser[userID]; ok {
		out = append(out, p)
	}
	return out, nil
}

func (r *petProfileRepo) GetProfileByUser(ctx context.Context, userID uint) (*models.PetProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUser[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *petProfileRepo) GetAllProfiles(ctx context.Context) ([]models.PetProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PetProfile, 0, len(r.byUser))
	for _, p := range r.byUser {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].User < out[j].User
	})
	return out, nil
}

func (r *petProfileRepo) UpsertProfile(ctx context.Context, userID uint, fields models.PetProfileFields, create bool) (*models.PetProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byUser[userID]
	if !ok {
		if !create {
			return nil, repositories.ErrNotFound
		}
		p = models.PetProfile{
			ID:   primitive.NewObjectID(),
			User: userID,
			Date: time.Now().Truncate(time.Millisecond),
		}
	}

	if fields.Petname != nil {
		p.Petname = *fields.Petname
	}
	if fields.Animal != nil {
		p.Animal = *fields.Animal
	}
	if fields.Family != nil {
		p.Family = *fields.Family
	}
	if fields.Breed != nil {
		p.Breed = *fields.Breed
	}
	if fields.Age != nil {
		p.Age = *fields.Age
	}
	if fields.Bio != nil {
		p.Bio = *fields.Bio
	}

	r.byUser[userID] = p
	return &p, nil
}
