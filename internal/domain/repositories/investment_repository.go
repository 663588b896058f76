package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
)

// InvestmentRepository defines investment data operations
type InvestmentRepository interface {
	Create(ctx context.Context, inv *entities.Investment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Investment, int64, error)
	// ListMatured returns ACTIVE investments whose endDate has passed.
	ListMatured(ctx context.Context, now time.Time, limit int) ([]*entities.Investment, error)
	// Close transitions an ACTIVE investment to a terminal status; the guard
	// on the current status makes the transition race-safe. Returns
	// ErrInvestmentNotActive when the row was not ACTIVE.
	Close(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus, closedAt time.Time) error
}
