package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/domain/repositories"
	"minevest.backend/pkg/logger"
)

// EarlyWithdrawalPenaltyRate is the share of principal forfeited when an
// investment is withdrawn before maturity.
const EarlyWithdrawalPenaltyRate = 0.10

// InvestmentUsecase handles the investment lifecycle: creation, read-time
// accrual, early withdrawal and maturity completion.
type InvestmentUsecase struct {
	investmentRepo repositories.InvestmentRepository
	operationRepo  repositories.MiningOperationRepository
	userRepo       repositories.UserRepository
	txRepo         repositories.TransactionRepository
	notifRepo      repositories.NotificationRepository
	uow            repositories.UnitOfWork
}

// NewInvestmentUsecase creates a new investment usecase
func NewInvestmentUsecase(
	investmentRepo repositories.InvestmentRepository,
	operationRepo repositories.MiningOperationRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	notifRepo repositories.NotificationRepository,
	uow repositories.UnitOfWork,
) *InvestmentUsecase {
	return &InvestmentUsecase{
		investmentRepo: investmentRepo,
		operationRepo:  operationRepo,
		userRepo:       userRepo,
		txRepo:         txRepo,
		notifRepo:      notifRepo,
		uow:            uow,
	}
}

// Create opens an investment: capacity is reserved and the balance debited
// inside one transaction, with both guards enforced at the row level so
// concurrent requests cannot overcommit capacity or overdraw the balance.
func (u *InvestmentUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateInvestmentInput) (*entities.Investment, error) {
	op, err := u.operationRepo.GetByID(ctx, input.OperationID)
	if err != nil {
		return nil, err
	}

	if op.Status != entities.OperationStatusActive {
		return nil, domainerrors.ErrOperationNotActive
	}
	if input.Amount < op.MinInvestment || input.Amount > op.MaxInvestment {
		return nil, domainerrors.ErrInvalidAmount
	}

	now := time.Now()
	investment := &entities.Investment{
		UserID:      userID,
		OperationID: op.ID,
		Amount:      input.Amount,
		DailyReturn: op.DailyReturn,
		Status:      entities.InvestmentStatusActive,
		EndDate:     now.Add(time.Duration(op.DurationDays) * 24 * time.Hour),
		CreatedAt:   now,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.operationRepo.ReserveCapacity(ctx, op.ID, input.Amount); err != nil {
			return err
		}
		if err := u.userRepo.DebitForInvestment(ctx, userID, input.Amount); err != nil {
			return err
		}
		if err := u.investmentRepo.Create(ctx, investment); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, &entities.Transaction{
			UserID:    userID,
			Type:      entities.TransactionTypeInvestment,
			Amount:    input.Amount,
			Status:    entities.TransactionStatusCompleted,
			Reference: null.StringFrom(investment.ID.String()),
		})
	})
	if err != nil {
		return nil, err
	}

	return investment, nil
}

// Get returns one investment with derived earnings, owner-only
func (u *InvestmentUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entities.InvestmentView, error) {
	investment, err := u.investmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if investment.UserID != userID {
		return nil, domainerrors.ErrNotOwner
	}
	return &entities.InvestmentView{
		Investment:    investment,
		AccruedToDate: investment.AccruedEarnings(time.Now()),
	}, nil
}

// ListByUser lists a user's investments with derived earnings
func (u *InvestmentUsecase) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InvestmentView, int64, error) {
	investments, total, err := u.investmentRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	views := make([]*entities.InvestmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, &entities.InvestmentView{
			Investment:    inv,
			AccruedToDate: inv.AccruedEarnings(now),
		})
	}
	return views, total, nil
}

// Withdraw closes an ACTIVE investment early. The owner forfeits a penalty on
// the principal but keeps earnings accrued to date. The status guard on the
// close makes a double withdrawal impossible.
func (u *InvestmentUsecase) Withdraw(ctx context.Context, userID, id uuid.UUID) (*entities.Investment, error) {
	investment, err := u.investmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if investment.UserID != userID {
		return nil, domainerrors.ErrNotOwner
	}

	now := time.Now()
	penalty := investment.Amount * EarlyWithdrawalPenaltyRate
	principal := investment.Amount - penalty
	accrued := investment.AccruedEarnings(now)

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.investmentRepo.Close(ctx, id, entities.InvestmentStatusWithdrawn, now); err != nil {
			return err
		}
		if err := u.userRepo.CreditBalance(ctx, userID, principal); err != nil {
			return err
		}
		if accrued > 0 {
			if err := u.userRepo.CreditEarnings(ctx, userID, accrued); err != nil {
				return err
			}
		}
		if err := u.operationRepo.ReleaseCapacity(ctx, investment.OperationID, investment.Amount); err != nil {
			return err
		}
		if err := u.txRepo.Create(ctx, &entities.Transaction{
			UserID:    userID,
			Type:      entities.TransactionTypeWithdrawal,
			Amount:    principal + accrued,
			Status:    entities.TransactionStatusCompleted,
			Reference: null.StringFrom(investment.ID.String()),
		}); err != nil {
			return err
		}
		return u.notifRepo.Create(ctx, &entities.Notification{
			UserID:  userID,
			Type:    entities.NotificationTypeInvestmentWithdraw,
			Title:   "Investment withdrawn",
			Message: fmt.Sprintf("Your early withdrawal paid out %.2f after a %.2f penalty.", principal+accrued, penalty),
		})
	})
	if err != nil {
		return nil, err
	}

	investment.Status = entities.InvestmentStatusWithdrawn
	investment.ClosedAt = null.TimeFrom(now)
	return investment, nil
}

// CompleteMatured sweeps ACTIVE investments past their end date: each one is
// closed, the principal returned and full-duration earnings credited, in its
// own transaction so one bad row does not block the batch. Returns the number
// completed.
func (u *InvestmentUsecase) CompleteMatured(ctx context.Context, now time.Time, batchSize int) (int, error) {
	matured, err := u.investmentRepo.ListMatured(ctx, now, batchSize)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, inv := range matured {
		if err := u.completeOne(ctx, inv); err != nil {
			logger.Error(ctx, "failed to complete matured investment",
				zap.String("investment_id", inv.ID.String()),
				zap.Error(err),
			)
			continue
		}
		completed++
	}
	return completed, nil
}

func (u *InvestmentUsecase) completeOne(ctx context.Context, inv *entities.Investment) error {
	// Earnings accrue up to the end date, never past it.
	earnings := inv.AccruedEarnings(inv.EndDate)

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.investmentRepo.Close(ctx, inv.ID, entities.InvestmentStatusCompleted, inv.EndDate); err != nil {
			return err
		}
		if err := u.userRepo.CreditBalance(ctx, inv.UserID, inv.Amount); err != nil {
			return err
		}
		if err := u.userRepo.CreditEarnings(ctx, inv.UserID, earnings); err != nil {
			return err
		}
		if err := u.operationRepo.ReleaseCapacity(ctx, inv.OperationID, inv.Amount); err != nil {
			return err
		}
		if err := u.txRepo.Create(ctx, &entities.Transaction{
			UserID:    inv.UserID,
			Type:      entities.TransactionTypeReturn,
			Amount:    inv.Amount + earnings,
			Status:    entities.TransactionStatusCompleted,
			Reference: null.StringFrom(inv.ID.String()),
		}); err != nil {
			return err
		}
		return u.notifRepo.Create(ctx, &entities.Notification{
			UserID:  inv.UserID,
			Type:    entities.NotificationTypeInvestmentMatured,
			Title:   "Investment matured",
			Message: fmt.Sprintf("Your investment of %.2f matured and returned %.2f.", inv.Amount, inv.Amount+earnings),
		})
	})
}
