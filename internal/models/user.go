package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "ADMIN"
	RoleProgrammer = "PROGRAMMER"
	RoleExternal   = "EXTERNAL"
	RoleUser       = "USER"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name         string `gorm:"size:100;not null" json:"name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'EXTERNAL'" json:"role"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
