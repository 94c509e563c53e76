package models

import (
	"time"

	"github.com/google/uuid"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdays = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

func DayOfWeekOf(t time.Time) DayOfWeek {
	return weekdays[t.Weekday()]
}

func (d DayOfWeek) Valid() bool {
	for _, v := range weekdays {
		if v == d {
			return true
		}
	}
	return false
}

// Availability is a recurring weekly window during which a programmer
// accepts advisory bookings. Times are "15:04" strings in the server zone.
type Availability struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	DayOfWeek DayOfWeek `gorm:"size:10;not null" json:"day_of_week"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Active    bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
