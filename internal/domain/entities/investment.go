package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InvestmentStatus represents the lifecycle state of an investment.
// COMPLETED and WITHDRAWN are terminal.
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "ACTIVE"
	InvestmentStatusCompleted InvestmentStatus = "COMPLETED"
	InvestmentStatusWithdrawn InvestmentStatus = "WITHDRAWN"
)

// Investment is a user's stake in one mining operation
type Investment struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	OperationID uuid.UUID        `json:"operationId"`
	Amount      float64          `json:"amount"`
	DailyReturn float64          `json:"dailyReturn"` // snapshot of the operation rate at creation
	Status      InvestmentStatus `json:"status"`
	EndDate     time.Time        `json:"endDate"`
	ClosedAt    null.Time        `json:"closedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// DaysElapsed returns full days since creation, capped at the operation
// duration implied by EndDate.
func (i *Investment) DaysElapsed(now time.Time) int {
	if now.Before(i.CreatedAt) {
		return 0
	}
	days := int(now.Sub(i.CreatedAt) / (24 * time.Hour))
	maxDays := int(i.EndDate.Sub(i.CreatedAt) / (24 * time.Hour))
	if days > maxDays {
		return maxDays
	}
	return days
}

// AccruedEarnings computes earnings to date: amount × dailyReturn × daysElapsed.
// Derived at read time; repeated reads at the same instant yield the same value.
func (i *Investment) AccruedEarnings(now time.Time) float64 {
	return i.Amount * i.DailyReturn * float64(i.DaysElapsed(now))
}

// CreateInvestmentInput represents input for creating an investment
type CreateInvestmentInput struct {
	OperationID uuid.UUID `json:"operationId" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
}

// InvestmentView is an investment with its derived earnings attached
type InvestmentView struct {
	*Investment
	AccruedToDate float64 `json:"accruedToDate"`
}
