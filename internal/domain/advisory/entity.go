package advisory

import (
	"time"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Approve(adv *models.Advisory, message string, now time.Time) error {
	if err := CanApprove(Status(adv.Status)); err != nil {
		return err
	}

	adv.Status = string(StatusApproved)
	adv.ResponseMessage = message
	adv.UpdatedAt = now
	return nil
}

func Reject(adv *models.Advisory, message string, now time.Time) error {
	if err := CanReject(Status(adv.Status)); err != nil {
		return err
	}

	adv.Status = string(StatusRejected)
	adv.ResponseMessage = message
	adv.UpdatedAt = now
	return nil
}

func Cancel(adv *models.Advisory, now time.Time) error {
	if err := CanCancel(Status(adv.Status)); err != nil {
		return err
	}

	adv.Status = string(StatusCancelled)
	adv.UpdatedAt = now
	return nil
}

func Complete(adv *models.Advisory, now time.Time) error {
	if err := CanComplete(Status(adv.Status)); err != nil {
		return err
	}

	adv.Status = string(StatusCompleted)
	adv.UpdatedAt = now
	return nil
}
