package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type WindowInput struct {
	DayOfWeek models.DayOfWeek
	StartTime string
	EndTime   string
}

func (in WindowInput) validate() error {
	if !in.DayOfWeek.Valid() {
		return apperr.Validation("invalid_day", "unknown day of week")
	}
	if !domain.ValidWindowBounds(in.StartTime, in.EndTime) {
		return apperr.Validation("invalid_window", "start time must be before end time")
	}
	return nil
}

// ======================================================
// USE CASE
// ======================================================

type UpsertWindow struct {
	repo  Repository
	clock clock.Clock
}

func NewUpsertWindow(repo Repository, clk clock.Clock) *UpsertWindow {
	return &UpsertWindow{
		repo:  repo,
		clock: clk,
	}
}

// Create persists a new active window for the owner. Overlapping
// windows on the same day are allowed.
func (uc *UpsertWindow) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	in WindowInput,
) (*models.Availability, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	w := &models.Availability{
		ID:        uuid.New(),
		UserID:    ownerID,
		DayOfWeek: in.DayOfWeek,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateWindow(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

// Update rewrites an existing window's day and bounds. Only the owner
// may touch it; updating reactivates a deactivated window.
func (uc *UpsertWindow) Update(
	ctx context.Context,
	windowID uuid.UUID,
	ownerID uuid.UUID,
	in WindowInput,
) (*models.Availability, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	w, err := uc.repo.GetWindow(ctx, windowID)
	if err != nil {
		return nil, err
	}

	if w.UserID != ownerID {
		return nil, apperr.Authorization("not_owner", "you do not own this availability window")
	}

	w.DayOfWeek = in.DayOfWeek
	w.StartTime = in.StartTime
	w.EndTime = in.EndTime
	w.Active = true
	w.UpdatedAt = uc.clock.Now()

	if err := uc.repo.UpdateWindow(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}
