package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/cache"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

const pgUniqueViolation = "23505"

type AdvisoryGormRepository struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewAdvisoryGormRepository(db *gorm.DB, c *cache.AvailabilityCache) *AdvisoryGormRepository {
	return &AdvisoryGormRepository{db: db, cache: c}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AdvisoryGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {
	return findUser(ctx, r.db, id)
}

// --------------------------------------------------
// Availability (read side of the booking path)
// --------------------------------------------------

func (r *AdvisoryGormRepository) ActiveWindows(
	ctx context.Context,
	ownerID uuid.UUID,
	day models.DayOfWeek,
) ([]models.Availability, error) {

	if windows, ok := r.cache.Get(ctx, ownerID, day); ok {
		return windows, nil
	}

	var windows []models.Availability
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ? AND active = true", ownerID, day).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	r.cache.Set(ctx, ownerID, day, windows)

	return windows, nil
}

// --------------------------------------------------
// Advisory (create / conflict)
// --------------------------------------------------

// liveSlotQuery scopes tx to the bookings that currently hold the
// advisory's (programmer, slot) conflict key.
func liveSlotQuery(tx *gorm.DB, adv *models.Advisory) *gorm.DB {
	return tx.
		Model(&models.Advisory{}).
		Where(
			"programmer_id = ? AND scheduled_at = ? AND status IN ?",
			adv.ProgrammerID,
			adv.ScheduledAt,
			[]string{string(domain.StatusPending), string(domain.StatusApproved)},
		)
}

func (r *AdvisoryGormRepository) CreateAdvisory(
	ctx context.Context,
	adv *models.Advisory,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Postgres rejects FOR UPDATE combined with aggregates, so the
		// pre-check selects the holding rows themselves. Locking zero
		// rows locks nothing, which is why the partial unique index
		// stays the real guard against concurrent creates.
		var held []uuid.UUID
		if err := liveSlotQuery(tx, adv).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Pluck("id", &held).Error; err != nil {
			return err
		}

		if len(held) > 0 {
			return apperr.Conflict("slot_taken", "an advisory already holds that slot")
		}

		return tx.Create(adv).Error
	})

	// The partial unique index is the backstop when two instances race
	// past the in-transaction check.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperr.Conflict("slot_taken", "an advisory already holds that slot")
	}

	return err
}

// --------------------------------------------------
// Advisory (state change)
// --------------------------------------------------

func (r *AdvisoryGormRepository) GetAdvisory(
	ctx context.Context,
	id uuid.UUID,
) (*models.Advisory, error) {

	var adv models.Advisory
	if err := r.db.WithContext(ctx).First(&adv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("advisory_not_found", "advisory does not exist")
		}
		return nil, err
	}

	return &adv, nil
}

func (r *AdvisoryGormRepository) TransitionAdvisory(
	ctx context.Context,
	adv *models.Advisory,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Advisory{}).
		Where("id = ? AND status = ?", adv.ID, string(from)).
		Updates(map[string]interface{}{
			"status":           adv.Status,
			"response_message": adv.ResponseMessage,
			"updated_at":       adv.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}

	// Zero rows means a concurrent transition won: the pre-state is
	// gone and this mutation must not commit.
	if res.RowsAffected == 0 {
		return apperr.InvalidState("invalid_state", "advisory is no longer in the expected state")
	}

	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AdvisoryGormRepository) ListByProgrammer(
	ctx context.Context,
	programmerID uuid.UUID,
	status *domain.Status,
	limit int,
	offset int,
) ([]models.Advisory, error) {

	q := r.db.WithContext(ctx).
		Where("programmer_id = ?", programmerID)

	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var advisories []models.Advisory
	if err := q.
		Order("scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&advisories).Error; err != nil {
		return nil, err
	}

	return advisories, nil
}

func (r *AdvisoryGormRepository) ListByExternal(
	ctx context.Context,
	externalID uuid.UUID,
	limit int,
	offset int,
) ([]models.Advisory, error) {

	var advisories []models.Advisory
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		Order("scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&advisories).Error; err != nil {
		return nil, err
	}

	return advisories, nil
}

func (r *AdvisoryGormRepository) ListApprovedBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Advisory, error) {

	var advisories []models.Advisory
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			string(domain.StatusApproved), from, to,
		).
		Order("scheduled_at ASC").
		Find(&advisories).Error; err != nil {
		return nil, err
	}

	return advisories, nil
}

func (r *AdvisoryGormRepository) CountByStatus(
	ctx context.Context,
) (map[domain.Status]int64, error) {

	var rows []struct {
		Status string
		Count  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Advisory{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = row.Count
	}

	return counts, nil
}

// Compile-time check
var _ domain.Repository = (*AdvisoryGormRepository)(nil)
