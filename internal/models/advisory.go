package models

import (
	"time"

	"github.com/google/uuid"
)

// Advisory is a booking request from an external user against a
// programmer's published availability. Timestamps are assigned by the
// engine from an injected clock, never by the ORM.
type Advisory struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProgrammerID uuid.UUID `gorm:"type:uuid;index;not null" json:"programmer_id"`
	ExternalID   uuid.UUID `gorm:"type:uuid;index;not null" json:"external_id"`

	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Status      string    `gorm:"size:20;not null" json:"status"`

	RequestComment  string `gorm:"type:text" json:"request_comment"`
	ResponseMessage string `gorm:"type:text" json:"response_message"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
