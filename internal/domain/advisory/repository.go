package advisory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)

	// -------- Availability --------
	ActiveWindows(
		ctx context.Context,
		ownerID uuid.UUID,
		day models.DayOfWeek,
	) ([]models.Availability, error)

	// -------- Advisory (create / conflict) --------

	// CreateAdvisory persists a new advisory inside a transaction that
	// guards the (programmer, scheduledAt) conflict key. A live booking
	// already holding the slot yields a Conflict error.
	CreateAdvisory(
		ctx context.Context,
		adv *models.Advisory,
	) error

	// -------- Advisory (state change) --------
	GetAdvisory(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Advisory, error)

	// TransitionAdvisory commits adv only when the stored row still
	// holds the expected pre-state; otherwise it reports InvalidState.
	// Two racing transitions on one advisory cannot both commit.
	TransitionAdvisory(
		ctx context.Context,
		adv *models.Advisory,
		from Status,
	) error

	// -------- Listing --------
	ListByProgrammer(
		ctx context.Context,
		programmerID uuid.UUID,
		status *Status,
		limit int,
		offset int,
	) ([]models.Advisory, error)

	ListByExternal(
		ctx context.Context,
		externalID uuid.UUID,
		limit int,
		offset int,
	) ([]models.Advisory, error)

	// ListApprovedBetween feeds the reminder sweep.
	ListApprovedBetween(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Advisory, error)

	CountByStatus(
		ctx context.Context,
	) (map[Status]int64, error)
}
