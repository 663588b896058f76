package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionTypeDeposit       TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal    TransactionType = "WITHDRAWAL"
	TransactionTypeInvestment    TransactionType = "INVESTMENT"
	TransactionTypeReturn        TransactionType = "RETURN"
	TransactionTypeReferralBonus TransactionType = "REFERRAL_BONUS"
)

// TransactionStatus represents a ledger entry state
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable ledger entry. Once COMPLETED it is never
// updated or deleted.
type Transaction struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"userId"`
	Type      TransactionType   `json:"type"`
	Amount    float64           `json:"amount"`
	Status    TransactionStatus `json:"status"`
	Reference null.String       `json:"reference,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// DepositInput represents input for a deposit
type DepositInput struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Reference string  `json:"reference"`
}

// WithdrawalInput represents input for a withdrawal
type WithdrawalInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	// Address is an optional crypto destination; validated when present.
	Address string `json:"address"`
}
