package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

// LogStore keeps a permanent record of every delivery attempt.
type LogStore struct {
	db *gorm.DB
}

func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db}
}

func (s *LogStore) Record(ev Event, sendErr error, now time.Time) error {
	entry := models.NotificationLog{
		ID:          uuid.New(),
		UserID:      ev.UserID,
		Kind:        ev.Kind,
		Destination: ev.Destination,
		Subject:     ev.Subject,
		Payload:     ev.Payload,
		Status:      models.NotificationSent,
	}

	if sendErr != nil {
		entry.Status = models.NotificationFailed
		entry.ErrorMessage = sendErr.Error()
	} else {
		entry.SentAt = &now
	}

	return s.db.Create(&entry).Error
}
