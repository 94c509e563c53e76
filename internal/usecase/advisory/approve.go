package advisory

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/notification"
)

type ApproveAdvisory struct {
	repo     domain.Repository
	notifier notification.Notifier
	clock    clock.Clock
}

func NewApproveAdvisory(
	repo domain.Repository,
	notifier notification.Notifier,
	clk clock.Clock,
) *ApproveAdvisory {
	return &ApproveAdvisory{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
	}
}

func (uc *ApproveAdvisory) Execute(
	ctx context.Context,
	advisoryID uuid.UUID,
	programmerID uuid.UUID,
	message string,
) (*models.Advisory, error) {

	adv, err := uc.repo.GetAdvisory(ctx, advisoryID)
	if err != nil {
		return nil, err
	}

	if adv.ProgrammerID != programmerID {
		return nil, apperr.Authorization("not_owner", "you do not own this advisory")
	}

	if err := domain.Approve(adv, message, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.TransitionAdvisory(ctx, adv, domain.StatusPending); err != nil {
		return nil, err
	}

	external, err := uc.repo.GetUser(ctx, adv.ExternalID)
	if err == nil {
		programmer, perr := uc.repo.GetUser(ctx, adv.ProgrammerID)
		if perr == nil {
			uc.notifier.Dispatch(notification.AdvisoryApproved(external, programmer, adv))
		}
	}

	return adv, nil
}
