package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an identity record stored in PostgreSQL
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"` // Ensure email is unique across all users
	Password     string    `json:"-" gorm:"not null"`                 // Store hashed password, ignore for JSON serialization
	ProfileImage string    `json:"profileImage,omitempty"`
	FirebaseUID  *string   `json:"firebaseUid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID, nil until linked
	CreatedAt    time.Time `json:"date" gorm:"autoCreateTime"`
}

// UserCompact is the public subset of a user embedded in other payloads
type UserCompact struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// ToCompact strips everything but the public fields
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:           u.ID,
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
	}
}

// RegisterUserRequest defines the request body for registering a local user
type RegisterUserRequest struct {
	Name         string `json:"name" validate:"required" msg:"Name is required"`
	Email        string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password     string `json:"password" validate:"required,min=8" msg:"Please enter a password with a minimum of 8 characters"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// SignInRequest defines the request body for exchanging credentials for a token
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required" msg:"ID token is required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
