package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"minevest.backend/internal/domain/entities"
	"minevest.backend/internal/domain/repositories"
	"minevest.backend/pkg/logger"
)

// Actor identifies the admin performing a mutation, with the request metadata
// recorded alongside every audit entry.
type Actor struct {
	ID        uuid.UUID
	IP        string
	UserAgent string
}

// AuditRecorder appends audit entries for admin mutations. Recording is
// best-effort: a failed write is logged, never propagated, so an audit sink
// outage cannot block the mutation itself.
type AuditRecorder struct {
	auditRepo repositories.AuditLogRepository
}

// NewAuditRecorder creates a new audit recorder
func NewAuditRecorder(auditRepo repositories.AuditLogRepository) *AuditRecorder {
	return &AuditRecorder{auditRepo: auditRepo}
}

// Record appends one audit entry
func (r *AuditRecorder) Record(ctx context.Context, actor Actor, action entities.AuditAction, resource string, resourceID string, oldValue, newValue *string) {
	log := &entities.AuditLog{
		ActorID:   actor.ID,
		Action:    action,
		Resource:  resource,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if resourceID != "" {
		log.ResourceID.SetValid(resourceID)
	}
	if oldValue != nil {
		log.OldValue.SetValid(*oldValue)
	}
	if newValue != nil {
		log.NewValue.SetValid(*newValue)
	}

	if err := r.auditRepo.Create(ctx, log); err != nil {
		logger.Error(ctx, "failed to record audit entry",
			zap.String("action", string(action)),
			zap.String("resource", resource),
			zap.Error(err),
		)
	}
}
