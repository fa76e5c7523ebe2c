package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/petsocial/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PetProfileRepository defines the interface for pet profile data operations
type PetProfileRepository interface {
	GetProfilesByUser(ctx context.Context, userID uint) ([]models.PetProfile, error)
	GetProfileByUser(ctx context.Context, userID uint) (*models.PetProfile, error)
	GetAllProfiles(ctx context.Context) ([]models.PetProfile, error)
	// UpsertProfile merges fields into the user's profile. When create is false and the
	// user has no profile yet, ErrNotFound is returned and nothing is written.
	UpsertProfile(ctx context.Context, userID uint, fields models.PetProfileFields, create bool) (*models.PetProfile, error)
}

// MongoPetProfileRepository implements PetProfileRepository for MongoDB
type MongoPetProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoPetProfileRepository creates a new MongoPetProfileRepository
func NewMongoPetProfileRepository(db *mongo.Database) *MongoPetProfileRepository {
	return &MongoPetProfileRepository{collection: db.Collection("petprofiles")}
}

// EnsureIndexes makes the owning user a unique key
func (r *MongoPetProfileRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create pet profile indexes: %w", err)
	}
	return nil
}

// GetProfilesByUser returns every profile owned by userID
func (r *MongoPetProfileRepository) GetProfilesByUser(ctx context.Context, userID uint) ([]models.PetProfile, error) {
	return r.find(ctx, bson.M{"user": userID})
}

// GetProfileByUser returns the profile owned by userID
func (r *MongoPetProfileRepository) GetProfileByUser(ctx context.Context, userID uint) (*models.PetProfile, error) {
	var profile models.PetProfile
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetAllProfiles returns every profile
func (r *MongoPetProfileRepository) GetAllProfiles(ctx context.Context) ([]models.PetProfile, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoPetProfileRepository) find(ctx context.Context, filter interface{}) ([]models.PetProfile, error) {
	profiles := []models.PetProfile{}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpsertProfile runs a single findOneAndUpdate keyed by the owning user
func (r *MongoPetProfileRepository) UpsertProfile(ctx context.Context, userID uint, fields models.PetProfileFields, create bool) (*models.PetProfile, error) {
	set := bson.M{}
	if fields.Petname != nil {
		set["petname"] = *fields.Petname
	}
	if fields.Animal != nil {
		set["animal"] = *fields.Animal
	}
	if fields.Family != nil {
		set["family"] = *fields.Family
	}
	if fields.Breed != nil {
		set["breed"] = *fields.Breed
	}
	if fields.Age != nil {
		set["age"] = *fields.Age
	}
	if fields.Bio != nil {
		set["bio"] = *fields.Bio
	}

	update := bson.M{"$setOnInsert": bson.M{"user": userID, "date": time.Now().Truncate(time.Millisecond)}}
	if len(set) > 0 {
		update["$set"] = set
	}
	opts := options.FindOneAndUpdate().SetUpsert(create).SetReturnDocument(options.After)

	var profile models.PetProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent first write won the insert; the document exists now, so update it.
		err = r.collection.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
