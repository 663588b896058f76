package usecases

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/domain/repositories"
)

// WalletUsecase handles deposits, withdrawals and transaction history
type WalletUsecase struct {
	userRepo repositories.UserRepository
	txRepo   repositories.TransactionRepository
	uow      repositories.UnitOfWork
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
) *WalletUsecase {
	return &WalletUsecase{
		userRepo: userRepo,
		txRepo:   txRepo,
		uow:      uow,
	}
}

// Deposit credits the balance and appends the ledger entry atomically
func (u *WalletUsecase) Deposit(ctx context.Context, userID uuid.UUID, input *entities.DepositInput) (*entities.Transaction, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	tx := &entities.Transaction{
		UserID: userID,
		Type:   entities.TransactionTypeDeposit,
		Amount: input.Amount,
		Status: entities.TransactionStatusCompleted,
	}
	if input.Reference != "" {
		tx.Reference = null.StringFrom(input.Reference)
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.CreditBalance(ctx, userID, input.Amount); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Withdraw debits the balance, guarded so it never goes below zero, and
// appends the ledger entry. Withdrawals require an approved identity; a crypto
// destination address, when given, must be a valid hex address.
func (u *WalletUsecase) Withdraw(ctx context.Context, userID uuid.UUID, input *entities.WithdrawalInput) (*entities.Transaction, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}
	if input.Address != "" && !common.IsHexAddress(input.Address) {
		return nil, domainerrors.BadRequest("invalid withdrawal address")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.KYCStatus != entities.KYCApproved {
		return nil, domainerrors.Forbidden("identity verification required for withdrawals")
	}

	tx := &entities.Transaction{
		UserID: userID,
		Type:   entities.TransactionTypeWithdrawal,
		Amount: input.Amount,
		Status: entities.TransactionStatusPending,
	}
	if input.Address != "" {
		tx.Reference = null.StringFrom(input.Address)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.DebitBalance(ctx, userID, input.Amount); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Transactions returns the user's ledger, newest first, optionally filtered
// by type
func (u *WalletUsecase) Transactions(ctx context.Context, userID uuid.UUID, txType entities.TransactionType, limit, offset int) ([]*entities.Transaction, int64, error) {
	return u.txRepo.GetByUserID(ctx, userID, txType, limit, offset)
}
