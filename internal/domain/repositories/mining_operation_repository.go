package repositories

import (
	"context"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
)

// MiningOperationRepository defines mining operation data operations
type MiningOperationRepository interface {
	Create(ctx context.Context, op *entities.MiningOperation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MiningOperation, error)
	Update(ctx context.Context, op *entities.MiningOperation) error
	List(ctx context.Context, status entities.OperationStatus, limit, offset int) ([]*entities.MiningOperation, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ReserveCapacity increments currentCapacity by amount only if the
	// operation is ACTIVE and the ceiling holds; a single conditional UPDATE,
	// so concurrent creates cannot overcommit. Returns ErrCapacityExceeded
	// when the guard fails.
	ReserveCapacity(ctx context.Context, id uuid.UUID, amount float64) error
	// ReleaseCapacity decrements currentCapacity by amount.
	ReleaseCapacity(ctx context.Context, id uuid.UUID, amount float64) error
}
