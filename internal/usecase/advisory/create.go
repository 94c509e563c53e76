package advisory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/notification"
)

// ======================================================
// INPUT
// ======================================================

type CreateAdvisoryInput struct {
	ExternalID   uuid.UUID
	ProgrammerID uuid.UUID
	ScheduledAt  time.Time
	Comment      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAdvisory struct {
	repo     domain.Repository
	notifier notification.Notifier
	clock    clock.Clock
}

func NewCreateAdvisory(
	repo domain.Repository,
	notifier notification.Notifier,
	clk clock.Clock,
) *CreateAdvisory {
	return &CreateAdvisory{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAdvisory) Execute(
	ctx context.Context,
	in CreateAdvisoryInput,
) (*models.Advisory, error) {

	external, err := uc.repo.GetUser(ctx, in.ExternalID)
	if err != nil {
		return nil, err
	}

	programmer, err := uc.repo.GetUser(ctx, in.ProgrammerID)
	if err != nil {
		return nil, err
	}

	if programmer.Role != models.RoleProgrammer {
		return nil, apperr.Validation("not_a_programmer", "selected user is not a programmer")
	}

	now := uc.clock.Now()
	if !in.ScheduledAt.After(now) {
		return nil, apperr.Validation("scheduled_in_past", "advisory must be scheduled in the future")
	}

	windows, err := uc.repo.ActiveWindows(
		ctx,
		programmer.ID,
		models.DayOfWeekOf(in.ScheduledAt),
	)
	if err != nil {
		return nil, err
	}

	if !domain.AnyWindowCovers(windows, in.ScheduledAt) {
		return nil, apperr.Validation("not_available", "programmer is not available at that time")
	}

	adv := &models.Advisory{
		ID:             uuid.New(),
		ProgrammerID:   programmer.ID,
		ExternalID:     external.ID,
		ScheduledAt:    in.ScheduledAt,
		Status:         string(domain.InitialStatus()),
		RequestComment: in.Comment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// The repository guards the (programmer, scheduledAt) conflict key
	// transactionally; a live booking in the slot surfaces as Conflict.
	if err := uc.repo.CreateAdvisory(ctx, adv); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.AdvisoryRequested(programmer, external, adv))

	return adv, nil
}
