package advisory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/notification"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type captureNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *captureNotifier) Dispatch(ev notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *captureNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

// memRepo mirrors the transactional guarantees of the gorm repository:
// conflict and transition checks run under a single lock, so racing
// calls observe the same serialization the database provides.
type memRepo struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	windows    []models.Availability
	advisories map[uuid.UUID]*models.Advisory
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:      make(map[uuid.UUID]*models.User),
		advisories: make(map[uuid.UUID]*models.Advisory),
	}
}

func (r *memRepo) addUser(role string) *models.User {
	u := &models.User{
		ID:     uuid.New(),
		Email:  uuid.NewString() + "@example.com",
		Name:   "user " + role,
		Role:   role,
		Active: true,
	}
	r.users[u.ID] = u
	return u
}

func (r *memRepo) addWindow(ownerID uuid.UUID, day models.DayOfWeek, start, end string) {
	r.windows = append(r.windows, models.Availability{
		ID:        uuid.New(),
		UserID:    ownerID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	})
}

func (r *memRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user_not_found", "user does not exist")
	}
	copied := *u
	return &copied, nil
}

func (r *memRepo) ActiveWindows(
	_ context.Context,
	ownerID uuid.UUID,
	day models.DayOfWeek,
) ([]models.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Availability
	for _, w := range r.windows {
		if w.UserID == ownerID && w.DayOfWeek == day && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memRepo) CreateAdvisory(_ context.Context, adv *models.Advisory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.advisories {
		if existing.ProgrammerID == adv.ProgrammerID &&
			existing.ScheduledAt.Equal(adv.ScheduledAt) &&
			(existing.Status == string(domain.StatusPending) || existing.Status == string(domain.StatusApproved)) {
			return apperr.Conflict("slot_taken", "an advisory already holds that slot")
		}
	}

	copied := *adv
	r.advisories[adv.ID] = &copied
	return nil
}

func (r *memRepo) GetAdvisory(_ context.Context, id uuid.UUID) (*models.Advisory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	adv, ok := r.advisories[id]
	if !ok {
		return nil, apperr.NotFound("advisory_not_found", "advisory does not exist")
	}
	copied := *adv
	return &copied, nil
}

func (r *memRepo) TransitionAdvisory(
	_ context.Context,
	adv *models.Advisory,
	from domain.Status,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.advisories[adv.ID]
	if !ok {
		return apperr.NotFound("advisory_not_found", "advisory does not exist")
	}

	if stored.Status != string(from) {
		return apperr.InvalidState("invalid_state", "advisory is no longer in the expected state")
	}

	stored.Status = adv.Status
	stored.ResponseMessage = adv.ResponseMessage
	stored.UpdatedAt = adv.UpdatedAt
	return nil
}

func (r *memRepo) ListByProgrammer(
	_ context.Context,
	programmerID uuid.UUID,
	status *domain.Status,
	limit int,
	offset int,
) ([]models.Advisory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Advisory
	for _, adv := range r.advisories {
		if adv.ProgrammerID != programmerID {
			continue
		}
		if status != nil && adv.Status != string(*status) {
			continue
		}
		out = append(out, *adv)
	}
	return page(out, limit, offset), nil
}

func (r *memRepo) ListByExternal(
	_ context.Context,
	externalID uuid.UUID,
	limit int,
	offset int,
) ([]models.Advisory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Advisory
	for _, adv := range r.advisories {
		if adv.ExternalID == externalID {
			out = append(out, *adv)
		}
	}
	return page(out, limit, offset), nil
}

func (r *memRepo) ListApprovedBetween(
	_ context.Context,
	from time.Time,
	to time.Time,
) ([]models.Advisory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Advisory
	for _, adv := range r.advisories {
		if adv.Status != string(domain.StatusApproved) {
			continue
		}
		if !adv.ScheduledAt.Before(from) && adv.ScheduledAt.Before(to) {
			out = append(out, *adv)
		}
	}
	return out, nil
}

func (r *memRepo) CountByStatus(_ context.Context) (map[domain.Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[domain.Status]int64)
	for _, adv := range r.advisories {
		counts[domain.Status(adv.Status)]++
	}
	return counts, nil
}

func page(advisories []models.Advisory, limit, offset int) []models.Advisory {
	if offset >= len(advisories) {
		return nil
	}
	advisories = advisories[offset:]
	if limit > 0 && limit < len(advisories) {
		advisories = advisories[:limit]
	}
	return advisories
}

var _ domain.Repository = (*memRepo)(nil)
