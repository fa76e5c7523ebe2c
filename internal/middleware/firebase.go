package middleware

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// IDTokenVerifier is the part of *auth.Client used here
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseUIDResolver maps a Firebase UID onto a linked local user id
type FirebaseUIDResolver interface {
	ResolveFirebaseUID(ctx context.Context, firebaseUID string) (uint, error)
}

// FirebaseVerifier accepts Firebase ID tokens of users that linked their account
type FirebaseVerifier struct {
	client IDTokenVerifier
	users  FirebaseUIDResolver
}

// NewFirebaseVerifier creates a FirebaseVerifier
func NewFirebaseVerifier(client IDTokenVerifier, users FirebaseUIDResolver) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, users: users}
}

// Verify validates the ID token with Firebase and resolves its UID
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (uint, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	userID, err := v.users.ResolveFirebaseUID(ctx, token.UID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return userID, nil
}
