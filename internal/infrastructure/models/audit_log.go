package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"type:varchar(100);not null"`
	Resource   string    `gorm:"type:varchar(100);not null;index"`
	ResourceID *string   `gorm:"type:varchar(64)"`
	OldValue   *string   `gorm:"type:text"`
	NewValue   *string   `gorm:"type:text"`
	IPAddress  string    `gorm:"type:varchar(64)"`
	UserAgent  string    `gorm:"type:varchar(500)"`
	CreatedAt  time.Time
}
