// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	TokenID   string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateAccessToken issues a signed access token for the user.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string) (string, *TokenClaims, error)

	// ValidateAccessToken validates an access token and returns its claims.
	// Revoked tokens are rejected.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RevokeAccessToken rejects the token until it would have expired anyway.
	RevokeAccessToken(ctx context.Context, claims *TokenClaims) error
}
