package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

type ListWindows struct {
	repo Repository
}

func NewListWindows(repo Repository) *ListWindows {
	return &ListWindows{repo: repo}
}

// ForOwner is the management view: all windows, including deactivated.
func (uc *ListWindows) ForOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]models.Availability, error) {
	return uc.repo.ListForOwner(ctx, ownerID)
}

// Public is what requesters see when picking a slot: active only.
func (uc *ListWindows) Public(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]models.Availability, error) {
	return uc.repo.ListActiveForOwner(ctx, ownerID)
}
