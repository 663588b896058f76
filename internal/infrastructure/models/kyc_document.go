package models

import (
	"time"

	"github.com/google/uuid"
)

type KycDocument struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_kyc_user_type,unique"`
	Type         string    `gorm:"type:varchar(50);not null;index:idx_kyc_user_type,unique"`
	FileURL      string    `gorm:"type:varchar(500);not null"`
	Status       string    `gorm:"type:varchar(50);not null;default:'PENDING';index"`
	RejectReason *string   `gorm:"type:varchar(500)"`
	ReviewedBy   *string   `gorm:"type:uuid"`
	ReviewedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
