package repositories

import (
	"context"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
)

// AuditLogRepository is a write-mostly sink for admin mutations. Records are
// never updated or deleted.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entities.AuditLog) error
	List(ctx context.Context, actorID uuid.UUID, resource string, limit, offset int) ([]*entities.AuditLog, int64, error)
}
