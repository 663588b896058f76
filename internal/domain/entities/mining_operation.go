package entities

import (
	"time"

	"github.com/google/uuid"
)

// OperationStatus represents the lifecycle state of a mining operation
type OperationStatus string

const (
	OperationStatusDraft  OperationStatus = "DRAFT"
	OperationStatusActive OperationStatus = "ACTIVE"
	OperationStatusPaused OperationStatus = "PAUSED"
	OperationStatusClosed OperationStatus = "CLOSED"
)

// MiningOperation is an investable product: a fixed daily return over a fixed
// duration, with a capacity ceiling. CurrentCapacity is the sum of active
// investments and never exceeds TotalCapacity.
type MiningOperation struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	MinInvestment   float64         `json:"minInvestment"`
	MaxInvestment   float64         `json:"maxInvestment"`
	DailyReturn     float64         `json:"dailyReturn"` // fraction, e.g. 0.015 = 1.5%/day
	DurationDays    int             `json:"durationDays"`
	TotalCapacity   float64         `json:"totalCapacity"`
	CurrentCapacity float64         `json:"currentCapacity"`
	Status          OperationStatus `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateOperationInput represents input for creating a mining operation
type CreateOperationInput struct {
	Name          string  `json:"name" binding:"required,min=2,max=150"`
	Description   string  `json:"description"`
	MinInvestment float64 `json:"minInvestment" binding:"required,gt=0"`
	MaxInvestment float64 `json:"maxInvestment" binding:"required,gt=0"`
	DailyReturn   float64 `json:"dailyReturn" binding:"required,gt=0,lt=1"`
	DurationDays  int     `json:"durationDays" binding:"required,gt=0"`
	TotalCapacity float64 `json:"totalCapacity" binding:"required,gt=0"`
}

// UpdateOperationInput represents the mutable subset of an operation
type UpdateOperationInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	MinInvestment *float64         `json:"minInvestment"`
	MaxInvestment *float64         `json:"maxInvestment"`
	DailyReturn   *float64         `json:"dailyReturn"`
	DurationDays  *int             `json:"durationDays"`
	TotalCapacity *float64         `json:"totalCapacity"`
	Status        *OperationStatus `json:"status"`
}
