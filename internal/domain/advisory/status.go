package advisory

import "github.com/portfolio-labs/advisory-scheduler/internal/apperr"

// ===============================
// Advisory Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transition guards
// ===============================

// CanApprove and CanReject only leave PENDING.
func CanApprove(current Status) error {
	if current != StatusPending {
		return apperr.InvalidState("invalid_state", "only pending advisories can be approved")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return apperr.InvalidState("invalid_state", "only pending advisories can be rejected")
	}
	return nil
}

// CanCancel is the external user's exit; approved bookings cannot be
// cancelled, only completed by the programmer.
func CanCancel(current Status) error {
	if current != StatusPending {
		return apperr.InvalidState("invalid_state", "only pending advisories can be cancelled")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusApproved {
		return apperr.InvalidState("invalid_state", "only approved advisories can be completed")
	}
	return nil
}
