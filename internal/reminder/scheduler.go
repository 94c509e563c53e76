package reminder

import (
	"context"
	"log"
	"time"

	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	domain "github.com/portfolio-labs/advisory-scheduler/internal/domain/advisory"
	"github.com/portfolio-labs/advisory-scheduler/internal/notification"
)

// Scheduler sends a daily reminder to both parties of every approved
// advisory scheduled for the next calendar day. Re-running a sweep
// sends duplicates; that is acceptable and not treated as an error.
type Scheduler struct {
	repo     domain.Repository
	notifier notification.Notifier
	clock    clock.Clock
	hour     int
}

func NewScheduler(
	repo domain.Repository,
	notifier notification.Notifier,
	clk clock.Clock,
	hour int,
) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 10
	}
	return &Scheduler{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
		hour:     hour,
	}
}

// Start blocks until ctx is cancelled, waking once per day at the
// configured hour.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("reminder scheduler started, daily at %02d:00", s.hour)

	for {
		wait := s.untilNext(s.clock.Now())

		select {
		case <-ctx.Done():
			log.Println("reminder scheduler stopped")
			return
		case <-time.After(wait):
			if err := s.RunOnce(ctx); err != nil {
				log.Println("reminder sweep failed:", err)
			}
		}
	}
}

// untilNext measures against the injected clock, not the wall clock,
// so the two never disagree about how long to sleep.
func (s *Scheduler) untilNext(now time.Time) time.Duration {
	return s.nextRun(now).Sub(now)
}

func (s *Scheduler) nextRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

// RunOnce performs a single sweep. A failure on one advisory is logged
// and skipped so it cannot abort the rest of the batch.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	now := s.clock.Now()
	startOfTomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	endOfTomorrow := startOfTomorrow.AddDate(0, 0, 1)

	advisories, err := s.repo.ListApprovedBetween(ctx, startOfTomorrow, endOfTomorrow)
	if err != nil {
		return err
	}

	log.Printf("reminder sweep: %d advisories scheduled for tomorrow", len(advisories))

	for i := range advisories {
		adv := &advisories[i]

		programmer, err := s.repo.GetUser(ctx, adv.ProgrammerID)
		if err != nil {
			log.Printf("reminder skipped for advisory %s: %v", adv.ID, err)
			continue
		}

		external, err := s.repo.GetUser(ctx, adv.ExternalID)
		if err != nil {
			log.Printf("reminder skipped for advisory %s: %v", adv.ID, err)
			continue
		}

		s.notifier.Dispatch(notification.AdvisoryReminder(programmer, adv))
		s.notifier.Dispatch(notification.AdvisoryReminder(external, adv))
	}

	return nil
}
