package models

import (
	"time"

	"github.com/google/uuid"
)

type Investment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OperationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount      float64   `gorm:"type:decimal(15,2);not null"`
	DailyReturn float64   `gorm:"type:decimal(8,6);not null"`
	Status      string    `gorm:"type:varchar(50);not null;default:'ACTIVE';index"`
	EndDate     time.Time `gorm:"not null;index"`
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
