package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"minevest.backend/internal/domain/entities"
	"minevest.backend/internal/infrastructure/models"
)

// AuditLogRepository implements the append-only audit trail
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create appends an audit record
func (r *AuditLogRepository) Create(ctx context.Context, log *entities.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m := auditLogToModel(log)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// List lists audit records, newest first. Zero actorID and empty resource
// mean no filter.
func (r *AuditLogRepository) List(ctx context.Context, actorID uuid.UUID, resource string, limit, offset int) ([]*entities.AuditLog, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AuditLog{})
	if actorID != uuid.Nil {
		query = query.Where("actor_id = ?", actorID)
	}
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logModels []models.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*entities.AuditLog, 0, len(logModels))
	for i := range logModels {
		logs = append(logs, auditLogToEntity(&logModels[i]))
	}
	return logs, total, nil
}

func auditLogToModel(log *entities.AuditLog) *models.AuditLog {
	return &models.AuditLog{
		ID:         log.ID,
		ActorID:    log.ActorID,
		Action:     string(log.Action),
		Resource:   log.Resource,
		ResourceID: log.ResourceID.Ptr(),
		OldValue:   log.OldValue.Ptr(),
		NewValue:   log.NewValue.Ptr(),
		IPAddress:  log.IPAddress,
		UserAgent:  log.UserAgent,
		CreatedAt:  log.CreatedAt,
	}
}

func auditLogToEntity(m *models.AuditLog) *entities.AuditLog {
	return &entities.AuditLog{
		ID:         m.ID,
		ActorID:    m.ActorID,
		Action:     entities.AuditAction(m.Action),
		Resource:   m.Resource,
		ResourceID: null.StringFromPtr(m.ResourceID),
		OldValue:   null.StringFromPtr(m.OldValue),
		NewValue:   null.StringFromPtr(m.NewValue),
		IPAddress:  m.IPAddress,
		UserAgent:  m.UserAgent,
		CreatedAt:  m.CreatedAt,
	}
}
