package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetProfile represents a user's pet stored in MongoDB. A user owns at most one.
type PetProfile struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User    uint               `json:"user" bson:"user"`
	Petname string             `json:"petname" bson:"petname"`
	Animal  string             `json:"animal" bson:"animal"`
	Family  string             `json:"family,omitempty" bson:"family,omitempty"`
	Breed   string             `json:"breed,omitempty" bson:"breed,omitempty"`
	Age     int                `json:"age,omitempty" bson:"age,omitempty"`
	Bio     string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Date    time.Time          `json:"date" bson:"date"`
}

// OwnerID returns the id of the owning user
func (p *PetProfile) OwnerID() uint {
	return p.User
}

// PetProfileFields holds the fields of an upsert. Nil means "leave as is".
type PetProfileFields struct {
	Petname *string
	Animal  *string
	Family  *string
	Breed   *string
	Age     *int
	Bio     *string
}

// UpsertPetProfileRequest defines the request body for creating or updating the caller's pet profile
type UpsertPetProfileRequest struct {
	Petname string `json:"petname" validate:"required" msg:"Name of pet is required"`
	Animal  string `json:"animal" validate:"required" msg:"Animal is required"`
	Family  string `json:"family,omitempty"`
	Breed   string `json:"breed,omitempty"`
	Age     int    `json:"age,omitempty" validate:"min=0,max=100" msg:"Age must be between 0 and 100"`
	Bio     string `json:"bio,omitempty" validate:"max=1000" msg:"Bio must be at most 1000 characters"`
}

// Fields keeps only the non-empty values of the request, so they merge into an existing profile
func (r *UpsertPetProfileRequest) Fields() PetProfileFields {
	var f PetProfileFields
	if r.Petname != "" {
		f.Petname = &r.Petname
	}
	if r.Animal != "" {
		f.Animal = &r.Animal
	}
	if r.Family != "" {
		f.Family = &r.Family
	}
	if r.Breed != "" {
		f.Breed = &r.Breed
	}
	if r.Age != 0 {
		f.Age = &r.Age
	}
	if r.Bio != "" {
		f.Bio = &r.Bio
	}
	return f
}

// PetProfileWithOwner is a profile enriched with its owner's public info
type PetProfileWithOwner struct {
	PetProfile
	Owner *UserCompact `json:"owner,omitempty"`
}
