package usecases

import (
	"context"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/domain/repositories"
)

// OperationUsecase serves the public catalogue of investable operations
type OperationUsecase struct {
	operationRepo repositories.MiningOperationRepository
}

// NewOperationUsecase creates a new operation usecase
func NewOperationUsecase(operationRepo repositories.MiningOperationRepository) *OperationUsecase {
	return &OperationUsecase{operationRepo: operationRepo}
}

// List lists ACTIVE operations only; drafts and closed operations stay
// back-office-only.
func (u *OperationUsecase) List(ctx context.Context, limit, offset int) ([]*entities.MiningOperation, int64, error) {
	return u.operationRepo.List(ctx, entities.OperationStatusActive, limit, offset)
}

// Get returns one operation. Drafts are not visible publicly.
func (u *OperationUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.MiningOperation, error) {
	op, err := u.operationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op.Status == entities.OperationStatusDraft {
		return nil, domainerrors.ErrNotFound
	}
	return op, nil
}
