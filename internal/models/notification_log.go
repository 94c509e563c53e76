package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationPending = "PENDING"
	NotificationSent    = "SENT"
	NotificationFailed  = "FAILED"
)

type NotificationLog struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`

	Kind        string `gorm:"size:40;not null" json:"kind"`
	Destination string `gorm:"size:100;not null" json:"destination"`
	Subject     string `gorm:"size:255" json:"subject"`
	Payload     string `gorm:"type:text" json:"payload"`

	Status       string     `gorm:"size:20;not null" json:"status"`
	ErrorMessage string     `gorm:"type:text" json:"error_message"`
	SentAt       *time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
}
