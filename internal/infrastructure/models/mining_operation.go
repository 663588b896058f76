package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MiningOperation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(150);not null"`
	Description     string    `gorm:"type:text"`
	MinInvestment   float64   `gorm:"type:decimal(15,2);not null"`
	MaxInvestment   float64   `gorm:"type:decimal(15,2);not null"`
	DailyReturn     float64   `gorm:"type:decimal(8,6);not null"`
	DurationDays    int       `gorm:"not null"`
	TotalCapacity   float64   `gorm:"type:decimal(15,2);not null"`
	CurrentCapacity float64   `gorm:"type:decimal(15,2);not null;default:0"`
	Status          string    `gorm:"type:varchar(50);not null;default:'DRAFT'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
