package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/models"
)

// ErrRefreshTokenConsumed indicates another request revoked the token first.
var ErrRefreshTokenConsumed = errors.New("refresh token already revoked")

// RefreshTokenRepository stores refresh tokens keyed by their opaque value.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindOwner(ctx context.Context, token string) (models.User, error)
	Revoke(ctx context.Context, tokenID uint, at time.Time) error
	Rotate(ctx context.Context, tokenID uint, at time.Time, replacement *models.RefreshToken) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository constructs a GORM-backed refresh token repository.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindOwner returns the user holding token with its full token collection loaded.
func (r *refreshTokenRepository) FindOwner(ctx context.Context, token string) (models.User, error) {
	var record models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		return models.User{}, err
	}

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("RefreshTokens", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_on ASC")
		}).
		First(&user, "id = ?", record.UserID).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenID uint, at time.Time) error {
	return revokeToken(r.db.WithContext(ctx), tokenID, at)
}

// Rotate revokes tokenID and stores replacement in one transaction.
func (r *refreshTokenRepository) Rotate(ctx context.Context, tokenID uint, at time.Time, replacement *models.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := revokeToken(tx, tokenID, at); err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
}

func revokeToken(db *gorm.DB, tokenID uint, at time.Time) error {
	result := db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_on IS NULL", tokenID).
		Update("revoked_on", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenConsumed
	}
	return nil
}
