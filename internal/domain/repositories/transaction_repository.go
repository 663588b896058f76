package repositories

import (
	"context"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
)

// TransactionRepository defines ledger operations. The ledger is append-only:
// there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, txType entities.TransactionType, limit, offset int) ([]*entities.Transaction, int64, error)
}
