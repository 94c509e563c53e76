package advisory

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

type CancelAdvisory struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewCancelAdvisory(repo domain.Repository, clk clock.Clock) *CancelAdvisory {
	return &CancelAdvisory{
		repo:  repo,
		clock: clk,
	}
}

// Execute cancels a pending advisory. Only the requesting external user
// may cancel; cancellation emits no outbound notification.
func (uc *CancelAdvisory) Execute(
	ctx context.Context,
	advisoryID uuid.UUID,
	externalID uuid.UUID,
) (*models.Advisory, error) {

	adv, err := uc.repo.GetAdvisory(ctx, advisoryID)
	if err != nil {
		return nil, err
	}

	if adv.ExternalID != externalID {
		return nil, apperr.Authorization("not_owner", "you do not own this advisory")
	}

	if err := domain.Cancel(adv, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.TransitionAdvisory(ctx, adv, domain.StatusPending); err != nil {
		return nil, err
	}

	return adv, nil
}
