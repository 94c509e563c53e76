package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/cache"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/usecase/availability"
)

type AvailabilityGormRepository struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewAvailabilityGormRepository(db *gorm.DB, c *cache.AvailabilityCache) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db, cache: c}
}

func (r *AvailabilityGormRepository) GetWindow(
	ctx context.Context,
	id uuid.UUID,
) (*models.Availability, error) {

	var w models.Availability
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("window_not_found", "availability window does not exist")
		}
		return nil, err
	}

	return &w, nil
}

func (r *AvailabilityGormRepository) CreateWindow(
	ctx context.Context,
	w *models.Availability,
) error {

	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return err
	}

	r.cache.Invalidate(ctx, w.UserID, w.DayOfWeek)
	return nil
}

func (r *AvailabilityGormRepository) UpdateWindow(
	ctx context.Context,
	w *models.Availability,
) error {

	// The window may have moved days; drop both cache entries. A stale
	// previous-day entry would keep serving the old bounds.
	var prev models.Availability
	if err := r.db.WithContext(ctx).First(&prev, "id = ?", w.ID).Error; err == nil {
		r.cache.Invalidate(ctx, prev.UserID, prev.DayOfWeek)
	}

	if err := r.db.WithContext(ctx).Save(w).Error; err != nil {
		return err
	}

	r.cache.Invalidate(ctx, w.UserID, w.DayOfWeek)
	return nil
}

func (r *AvailabilityGormRepository) ListForOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]models.Availability, error) {

	var windows []models.Availability
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *AvailabilityGormRepository) ListActiveForOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]models.Availability, error) {

	var windows []models.Availability
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true", ownerID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

// Compile-time check
var _ availability.Repository = (*AvailabilityGormRepository)(nil)
