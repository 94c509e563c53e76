package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a single-use opaque credential. Rotation revokes the
// row and links its successor through ReplacedByToken; rows are kept
// forever as an audit trail, cleanup is external housekeeping.
type RefreshToken struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Token  string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	ExpiresAt       time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt       *time.Time `json:"revoked_at"`
	ReplacedByToken *string    `gorm:"size:64" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Usable reports whether the token may still be exchanged at the given
// instant.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}
