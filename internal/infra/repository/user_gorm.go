package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

// findUser is shared by the advisory and token repositories; both only
// ever read identities, the profile subsystem owns writes.
func findUser(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user_not_found", "user does not exist")
		}
		return nil, err
	}
	return &user, nil
}
