// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/tracker/internal/integration/persistence/model"
)

// TokenRepository defines the interface for access token revocation.
type TokenRepository interface {
	// RevokeToken stores the token ID until its expiry.
	RevokeToken(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error

	// IsTokenRevoked checks if a token ID was revoked and has not expired yet.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)

	// PurgeExpired removes revocations of tokens that expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// tokenRepository implements the TokenRepository interface.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// RevokeToken stores the token ID until its expiry. Revoking twice is a no-op.
func (r *tokenRepository) RevokeToken(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error {
	revoked := &model.RevokedTokenModel{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(revoked)
	return result.Error
}

// IsTokenRevoked checks if a token ID was revoked and has not expired yet.
func (r *tokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.RevokedTokenModel{}).
		Where("token_id = ? AND expires_at > ?", tokenID, time.Now().UTC()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// PurgeExpired removes revocations of tokens that expired before now.
func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&model.RevokedTokenModel{})
	return result.RowsAffected, result.Error
}
