package notification

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

const (
	KindAdvisoryRequested = "advisory_requested"
	KindAdvisoryApproved  = "advisory_approved"
	KindAdvisoryRejected  = "advisory_rejected"
	KindAdvisoryReminder  = "advisory_reminder"
)

// Event is one outbound message. The engine fires events best-effort
// and never observes delivery results.
type Event struct {
	UserID      uuid.UUID
	Kind        string
	Destination string
	Subject     string
	Payload     string
}

func AdvisoryRequested(programmer, external *models.User, adv *models.Advisory) Event {
	comment := adv.RequestComment
	if comment == "" {
		comment = "no comment"
	}
	return Event{
		UserID:      programmer.ID,
		Kind:        KindAdvisoryRequested,
		Destination: programmer.Email,
		Subject:     "New advisory request",
		Payload: fmt.Sprintf(
			"%s (%s) requested an advisory session on %s. Comment: %s",
			external.Name, external.Email,
			adv.ScheduledAt.Format("2006-01-02 15:04"),
			comment,
		),
	}
}

func AdvisoryApproved(external, programmer *models.User, adv *models.Advisory) Event {
	message := adv.ResponseMessage
	if message == "" {
		message = "no message"
	}
	return Event{
		UserID:      external.ID,
		Kind:        KindAdvisoryApproved,
		Destination: external.Email,
		Subject:     "Your advisory was approved",
		Payload: fmt.Sprintf(
			"%s approved your advisory request for %s. Message: %s",
			programmer.Name,
			adv.ScheduledAt.Format("2006-01-02 15:04"),
			message,
		),
	}
}

func AdvisoryRejected(external, programmer *models.User, adv *models.Advisory) Event {
	message := adv.ResponseMessage
	if message == "" {
		message = "no message"
	}
	return Event{
		UserID:      external.ID,
		Kind:        KindAdvisoryRejected,
		Destination: external.Email,
		Subject:     "Your advisory was rejected",
		Payload: fmt.Sprintf(
			"%s rejected your advisory request. Message: %s",
			programmer.Name,
			message,
		),
	}
}

func AdvisoryReminder(user *models.User, adv *models.Advisory) Event {
	return Event{
		UserID:      user.ID,
		Kind:        KindAdvisoryReminder,
		Destination: user.Email,
		Subject:     "Advisory reminder",
		Payload: fmt.Sprintf(
			"You have an advisory session scheduled tomorrow at %s.",
			adv.ScheduledAt.Format("15:04"),
		),
	}
}
