package advisory

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

const defaultPageSize = 20

type ListAdvisories struct {
	repo domain.Repository
}

func NewListAdvisories(repo domain.Repository) *ListAdvisories {
	return &ListAdvisories{repo: repo}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseStatus(raw string) (*domain.Status, error) {
	if raw == "" {
		return nil, nil
	}
	s := domain.Status(raw)
	switch s {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected,
		domain.StatusCancelled, domain.StatusCompleted:
		return &s, nil
	}
	return nil, apperr.Validation("invalid_status", "unknown advisory status")
}

// ForProgrammer lists a programmer's incoming requests, optionally
// filtered by status.
func (uc *ListAdvisories) ForProgrammer(
	ctx context.Context,
	programmerID uuid.UUID,
	statusFilter string,
	limit int,
	offset int,
) ([]models.Advisory, error) {

	status, err := parseStatus(statusFilter)
	if err != nil {
		return nil, err
	}

	limit, offset = normalizePage(limit, offset)
	return uc.repo.ListByProgrammer(ctx, programmerID, status, limit, offset)
}

// ForExternal lists the advisories an external user has requested.
func (uc *ListAdvisories) ForExternal(
	ctx context.Context,
	externalID uuid.UUID,
	limit int,
	offset int,
) ([]models.Advisory, error) {

	limit, offset = normalizePage(limit, offset)
	return uc.repo.ListByExternal(ctx, externalID, limit, offset)
}

// CountByStatus powers the admin dashboard.
func (uc *ListAdvisories) CountByStatus(
	ctx context.Context,
) (map[domain.Status]int64, error) {
	return uc.repo.CountByStatus(ctx)
}
