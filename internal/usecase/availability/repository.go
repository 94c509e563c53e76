package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

type Repository interface {
	GetWindow(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Availability, error)

	CreateWindow(
		ctx context.Context,
		w *models.Availability,
	) error

	UpdateWindow(
		ctx context.Context,
		w *models.Availability,
	) error

	// ListForOwner returns every window, active or not; the owner's
	// management view needs both.
	ListForOwner(
		ctx context.Context,
		ownerID uuid.UUID,
	) ([]models.Availability, error)

	ListActiveForOwner(
		ctx context.Context,
		ownerID uuid.UUID,
	) ([]models.Availability, error)
}
