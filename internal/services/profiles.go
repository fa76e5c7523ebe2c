package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/repositories"
	"github.com/anonto42/petsocial/backend/validators"
)

// PetProfileRegistry manages the single pet profile each user may own
type PetProfileRegistry struct {
	profiles repositories.PetProfileRepository
}

// NewPetProfileRegistry creates a PetProfileRegistry
func NewPetProfileRegistry(profiles repositories.PetProfileRepository) *PetProfileRegistry {
	return &PetProfileRegistry{profiles: profiles}
}

// GetMine returns the caller's profiles, ErrNotFound if there are none
func (s *PetProfileRegistry) GetMine(ctx context.Context, userID uint) ([]models.PetProfile, error) {
	profiles, err := s.profiles.GetProfilesByUser(ctx, userID)
	if err != nil {
		return nil, translate("get own pet profiles", err)
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}
	return profiles, nil
}

// Upsert merges the supplied fields into the user's profile, creating it on first write.
// Creating requires petname and animal; a partial write for a user without a profile fails.
func (s *PetProfileRegistry) Upsert(ctx context.Context, userID uint, fields models.PetProfileFields) (*models.PetProfile, error) {
	fields = normalize(fields)
	create := fields.Petname != nil && fields.Animal != nil

	profile, err := s.profiles.UpsertProfile(ctx, userID, fields, create)
	if errors.Is(err, repositories.ErrNotFound) {
		// Report the missing creation fields the same way a request body would
		if verr := validators.Struct(models.UpsertPetProfileRequest{
			Petname: deref(fields.Petname),
			Animal:  deref(fields.Animal),
		}); verr != nil {
			return nil, verr
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate("upsert pet profile", err)
	}
	return profile, nil
}

// ListAll returns every profile
func (s *PetProfileRegistry) ListAll(ctx context.Context) ([]models.PetProfile, error) {
	profiles, err := s.profiles.GetAllProfiles(ctx)
	if err != nil {
		return nil, translate("list pet profiles", err)
	}
	return profiles, nil
}

// GetByUser returns the profile owned by userID
func (s *PetProfileRegistry) GetByUser(ctx context.Context, userID uint) (*models.PetProfile, error) {
	profile, err := s.profiles.GetProfileByUser(ctx, userID)
	if err != nil {
		return nil, translate("get pet profile", err)
	}
	return profile, nil
}

// normalize trims string fields and drops empty ones so they never overwrite stored values
func normalize(f models.PetProfileFields) models.PetProfileFields {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		if v == "" {
			return nil
		}
		return &v
	}
	f.Petname = trim(f.Petname)
	f.Animal = trim(f.Animal)
	f.Family = trim(f.Family)
	f.Breed = trim(f.Breed)
	f.Bio = trim(f.Bio)
	if f.Age != nil && *f.Age == 0 {
		f.Age = nil
	}
	return f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
