package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(50);not null;index"`
	Amount    float64   `gorm:"type:decimal(15,2);not null"`
	Status    string    `gorm:"type:varchar(50);not null"`
	Reference *string   `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}
