package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name            string     `gorm:"type:varchar(100);not null"`
	PasswordHash    string     `gorm:"type:varchar(255);not null"`
	Role            string     `gorm:"type:varchar(50);not null;default:'USER'"`
	Status          string     `gorm:"type:varchar(50);not null;default:'ACTIVE'"`
	KYCStatus       string     `gorm:"type:varchar(50);default:'PENDING'"`
	Balance         float64    `gorm:"type:decimal(15,2);not null;default:0"`
	TotalInvested   float64    `gorm:"type:decimal(15,2);not null;default:0"`
	TotalEarnings   float64    `gorm:"type:decimal(15,2);not null;default:0"`
	ReferralCode    string     `gorm:"type:varchar(16);uniqueIndex;not null"`
	ReferredBy      *string    `gorm:"type:uuid"`
	EmailVerifiedAt *time.Time `gorm:"type:timestamp"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

type VerificationCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Purpose   string    `gorm:"type:varchar(50);not null"`
	Code      string    `gorm:"type:varchar(16);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}
