package advisory

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

type CompleteAdvisory struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewCompleteAdvisory(repo domain.Repository, clk clock.Clock) *CompleteAdvisory {
	return &CompleteAdvisory{
		repo:  repo,
		clock: clk,
	}
}

func (uc *CompleteAdvisory) Execute(
	ctx context.Context,
	advisoryID uuid.UUID,
	programmerID uuid.UUID,
) (*models.Advisory, error) {

	adv, err := uc.repo.GetAdvisory(ctx, advisoryID)
	if err != nil {
		return nil, err
	}

	if adv.ProgrammerID != programmerID {
		return nil, apperr.Authorization("not_owner", "you do not own this advisory")
	}

	if err := domain.Complete(adv, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.TransitionAdvisory(ctx, adv, domain.StatusApproved); err != nil {
		return nil, err
	}

	return adv, nil
}
