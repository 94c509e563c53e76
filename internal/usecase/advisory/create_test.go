package advisory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/notification"

	"github.com/google/uuid"
)

// clockNow is a Monday morning; every scenario schedules relative to it.
var clockNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func mondaySlot(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestCreateAdvisory(t *testing.T) {
	setup := func() (*memRepo, *captureNotifier, *CreateAdvisory, *models.User, *models.User) {
		repo := newMemRepo()
		programmer := repo.addUser(models.RoleProgrammer)
		external := repo.addUser(models.RoleExternal)
		repo.addWindow(programmer.ID, models.Monday, "09:00", "10:00")

		notifier := &captureNotifier{}
		uc := NewCreateAdvisory(repo, notifier, fixedClock{now: clockNow})
		return repo, notifier, uc, programmer, external
	}

	t.Run("books a covered slot and notifies the programmer", func(t *testing.T) {
		_, notifier, uc, programmer, external := setup()

		adv, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 15),
			Comment:      "need help with goroutine leaks",
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), adv.Status)
		assert.Equal(t, programmer.ID, adv.ProgrammerID)
		assert.Equal(t, external.ID, adv.ExternalID)
		assert.Equal(t, clockNow, adv.CreatedAt)
		assert.Equal(t, clockNow, adv.UpdatedAt)
		assert.NotEqual(t, uuid.Nil, adv.ID)

		require.Len(t, notifier.events, 1)
		ev := notifier.events[0]
		assert.Equal(t, notification.KindAdvisoryRequested, ev.Kind)
		assert.Equal(t, programmer.Email, ev.Destination)
		assert.Contains(t, ev.Payload, external.Name)
	})

	t.Run("accepts the last slot a window can hold", func(t *testing.T) {
		_, _, uc, programmer, external := setup()

		// 09:30 is the last start that fits a full session before 10:00.
		_, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 30),
		})
		require.NoError(t, err)
	})

	t.Run("rejects a slot the session cannot fit into", func(t *testing.T) {
		_, notifier, uc, programmer, external := setup()

		_, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 45),
		})
		require.Error(t, err)
		assert.Equal(t, "not_available", apperr.CodeOf(err))
		assert.Empty(t, notifier.events)
	})

	t.Run("rejects a slot outside every window", func(t *testing.T) {
		_, _, uc, programmer, external := setup()

		_, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(14, 0),
		})
		require.Error(t, err)
		assert.Equal(t, "not_available", apperr.CodeOf(err))
	})

	t.Run("rejects scheduling in the past", func(t *testing.T) {
		_, _, uc, programmer, external := setup()

		_, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  clockNow.Add(-time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, "scheduled_in_past", apperr.CodeOf(err))
	})

	t.Run("rejects booking against a non-programmer", func(t *testing.T) {
		repo, _, uc, _, external := setup()
		other := repo.addUser(models.RoleExternal)

		_, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: other.ID,
			ScheduledAt:  mondaySlot(9, 15),
		})
		require.Error(t, err)
		assert.Equal(t, "not_a_programmer", apperr.CodeOf(err))
	})

	t.Run("reports missing users as not found", func(t *testing.T) {
		_, _, uc, programmer, _ := setup()

		_, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   uuid.New(),
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 15),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("an occupied slot conflicts", func(t *testing.T) {
		repo, _, uc, programmer, external := setup()
		rival := repo.addUser(models.RoleExternal)

		_, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 0),
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   rival.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 0),
		})
		require.Error(t, err)
		assert.Equal(t, "slot_taken", apperr.CodeOf(err))
	})

	t.Run("a cancelled booking frees its slot", func(t *testing.T) {
		repo, _, uc, programmer, external := setup()
		rival := repo.addUser(models.RoleExternal)

		adv, err := uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   external.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 0),
		})
		require.NoError(t, err)

		cancel := NewCancelAdvisory(repo, fixedClock{now: clockNow})
		_, err = cancel.Execute(context.Background(), adv.ID, external.ID)
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), CreateAdvisoryInput{
			ExternalID:   rival.ID,
			ProgrammerID: programmer.ID,
			ScheduledAt:  mondaySlot(9, 0),
		})
		require.NoError(t, err)
	})
}

func TestCreateAdvisoryConcurrentSameSlot(t *testing.T) {
	repo := newMemRepo()
	programmer := repo.addUser(models.RoleProgrammer)
	repo.addWindow(programmer.ID, models.Monday, "09:00", "10:00")

	uc := NewCreateAdvisory(repo, &captureNotifier{}, fixedClock{now: clockNow})

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		external := repo.addUser(models.RoleExternal)
		wg.Add(1)
		go func(i int, externalID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateAdvisoryInput{
				ExternalID:   externalID,
				ProgrammerID: programmer.ID,
				ScheduledAt:  mondaySlot(9, 15),
			})
		}(i, external.ID)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.Equal(t, "slot_taken", apperr.CodeOf(err))
		}
	}
	assert.Equal(t, 1, won, "exactly one racing booking may take the slot")
}
