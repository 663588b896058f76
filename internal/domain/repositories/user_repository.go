package repositories

import (
	"context"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// DebitForInvestment atomically moves amount from balance to totalInvested,
	// guarded by balance >= amount. Returns ErrInsufficientBalance otherwise.
	DebitForInvestment(ctx context.Context, id uuid.UUID, amount float64) error
	// DebitBalance decrements balance, guarded by balance >= amount.
	DebitBalance(ctx context.Context, id uuid.UUID, amount float64) error
	// CreditBalance increments balance.
	CreditBalance(ctx context.Context, id uuid.UUID, amount float64) error
	// CreditEarnings increments balance and totalEarnings together.
	CreditEarnings(ctx context.Context, id uuid.UUID, amount float64) error

	List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// VerificationCodeRepository stores short-lived email codes (verification,
// password reset)
type VerificationCodeRepository interface {
	Create(ctx context.Context, userID uuid.UUID, purpose, code string) error
	Consume(ctx context.Context, userID uuid.UUID, purpose, code string) error
}
