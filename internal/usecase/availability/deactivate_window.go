package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
)

type DeactivateWindow struct {
	repo  Repository
	clock clock.Clock
}

func NewDeactivateWindow(repo Repository, clk clock.Clock) *DeactivateWindow {
	return &DeactivateWindow{
		repo:  repo,
		clock: clk,
	}
}

// Execute soft-deactivates a window. Windows are never physically
// removed while bookings may reference them; the call is idempotent.
func (uc *DeactivateWindow) Execute(
	ctx context.Context,
	windowID uuid.UUID,
	ownerID uuid.UUID,
) error {

	w, err := uc.repo.GetWindow(ctx, windowID)
	if err != nil {
		return err
	}

	if w.UserID != ownerID {
		return apperr.Authorization("not_owner", "you do not own this availability window")
	}

	if !w.Active {
		return nil
	}

	w.Active = false
	w.UpdatedAt = uc.clock.Now()

	return uc.repo.UpdateWindow(ctx, w)
}
