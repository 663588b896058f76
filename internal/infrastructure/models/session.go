package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	RefreshTokenHash string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserAgent        string    `gorm:"type:varchar(500)"`
	IPAddress        string    `gorm:"type:varchar(64)"`
	IsActive         bool      `gorm:"not null;default:true"`
	ExpiresAt        time.Time `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
