package advisory

import (
	"time"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

// SessionDuration is the fixed length reserved per advisory. A slot is
// only bookable when the full session fits before the window closes.
const SessionDuration = 30 * time.Minute

// minuteOfDay converts a "15:04" string to minutes since midnight.
// Malformed values make the window unbookable rather than erroring.
func minuteOfDay(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// WindowCovers reports whether the window admits a session starting at
// the given instant: start <= t and t+SessionDuration <= end.
func WindowCovers(w models.Availability, at time.Time) bool {
	if !w.Active {
		return false
	}

	start, ok := minuteOfDay(w.StartTime)
	if !ok {
		return false
	}
	end, ok := minuteOfDay(w.EndTime)
	if !ok {
		return false
	}

	slot := at.Hour()*60 + at.Minute()
	session := int(SessionDuration / time.Minute)

	return slot >= start && slot <= end-session
}

func AnyWindowCovers(windows []models.Availability, at time.Time) bool {
	for _, w := range windows {
		if WindowCovers(w, at) {
			return true
		}
	}
	return false
}

// ValidWindowBounds enforces start < end strictly; equal bounds would
// describe an empty window.
func ValidWindowBounds(startTime, endTime string) bool {
	start, ok := minuteOfDay(startTime)
	if !ok {
		return false
	}
	end, ok := minuteOfDay(endTime)
	if !ok {
		return false
	}
	return start < end
}
