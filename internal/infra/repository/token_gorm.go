package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/token"
)

type TokenGormRepository struct {
	db *gorm.DB
}

func NewTokenGormRepository(db *gorm.DB) *TokenGormRepository {
	return &TokenGormRepository{db: db}
}

func (r *TokenGormRepository) SaveToken(
	ctx context.Context,
	t *models.RefreshToken,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TokenGormRepository) GetByValue(
	ctx context.Context,
	value string,
) (*models.RefreshToken, error) {

	var t models.RefreshToken
	if err := r.db.WithContext(ctx).First(&t, "token = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidToken("invalid_refresh_token", "refresh token is not recognized")
		}
		return nil, err
	}

	return &t, nil
}

// RotateToken commits the revocation of old and the insert of next
// together: a crash can never leave the chain half-rotated, and a
// concurrent rotation of the same value loses cleanly.
func (r *TokenGormRepository) RotateToken(
	ctx context.Context,
	old *models.RefreshToken,
	next *models.RefreshToken,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.RefreshToken{}).
			Where("token = ? AND revoked_at IS NULL", old.Token).
			Updates(map[string]interface{}{
				"revoked_at":        old.RevokedAt,
				"replaced_by_token": old.ReplacedByToken,
			})

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return apperr.RevokedToken("token_revoked", "refresh token was already rotated")
		}

		return tx.Create(next).Error
	})
}

func (r *TokenGormRepository) RevokeToken(
	ctx context.Context,
	value string,
	at time.Time,
) error {

	var t models.RefreshToken
	if err := r.db.WithContext(ctx).First(&t, "token = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.InvalidToken("invalid_refresh_token", "refresh token is not recognized")
		}
		return err
	}

	// Revoking an already-revoked token is a no-op, not an error.
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ? AND revoked_at IS NULL", value).
		Update("revoked_at", at).Error
}

func (r *TokenGormRepository) RevokeAllForUser(
	ctx context.Context,
	userID uuid.UUID,
	at time.Time,
) error {

	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at).Error
}

func (r *TokenGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {
	return findUser(ctx, r.db, id)
}

// Compile-time check
var _ token.Repository = (*TokenGormRepository)(nil)
