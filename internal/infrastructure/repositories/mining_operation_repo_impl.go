package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/infrastructure/models"
)

// MiningOperationRepository implements mining operation data operations
type MiningOperationRepository struct {
	db *gorm.DB
}

// NewMiningOperationRepository creates a new mining operation repository
func NewMiningOperationRepository(db *gorm.DB) *MiningOperationRepository {
	return &MiningOperationRepository{db: db}
}

// Create creates a new mining operation
func (r *MiningOperationRepository) Create(ctx context.Context, op *entities.MiningOperation) error {
	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	m := operationToModel(op)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a mining operation by ID
func (r *MiningOperationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MiningOperation, error) {
	var m models.MiningOperation
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return operationToEntity(&m), nil
}

// Update updates a mining operation
func (r *MiningOperationRepository) Update(ctx context.Context, op *entities.MiningOperation) error {
	updates := map[string]interface{}{
		"name":           op.Name,
		"description":    op.Description,
		"min_investment": op.MinInvestment,
		"max_investment": op.MaxInvestment,
		"daily_return":   op.DailyReturn,
		"duration_days":  op.DurationDays,
		"total_capacity": op.TotalCapacity,
		"status":         op.Status,
		"updated_at":     time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MiningOperation{}).Where("id = ?", op.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists operations, optionally filtered by status, newest first
func (r *MiningOperationRepository) List(ctx context.Context, status entities.OperationStatus, limit, offset int) ([]*entities.MiningOperation, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MiningOperation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var opModels []models.MiningOperation
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&opModels).Error; err != nil {
		return nil, 0, err
	}

	ops := make([]*entities.MiningOperation, 0, len(opModels))
	for i := range opModels {
		ops = append(ops, operationToEntity(&opModels[i]))
	}
	return ops, total, nil
}

// SoftDelete soft deletes a mining operation
func (r *MiningOperationRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.MiningOperation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ReserveCapacity check-and-increments in a single conditional UPDATE so two
// concurrent reservations cannot jointly exceed the ceiling.
func (r *MiningOperationRepository) ReserveCapacity(ctx context.Context, id uuid.UUID, amount float64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MiningOperation{}).
		Where("id = ? AND status = ? AND current_capacity + ? <= total_capacity",
			id, entities.OperationStatusActive, amount).
		Updates(map[string]interface{}{
			"current_capacity": gorm.Expr("current_capacity + ?", amount),
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCapacityExceeded
	}
	return nil
}

// ReleaseCapacity returns reserved capacity after a withdrawal or completion
func (r *MiningOperationRepository) ReleaseCapacity(ctx context.Context, id uuid.UUID, amount float64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MiningOperation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_capacity": gorm.Expr("current_capacity - ?", amount),
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func operationToModel(op *entities.MiningOperation) *models.MiningOperation {
	return &models.MiningOperation{
		ID:              op.ID,
		Name:            op.Name,
		Description:     op.Description,
		MinInvestment:   op.MinInvestment,
		MaxInvestment:   op.MaxInvestment,
		DailyReturn:     op.DailyReturn,
		DurationDays:    op.DurationDays,
		TotalCapacity:   op.TotalCapacity,
		CurrentCapacity: op.CurrentCapacity,
		Status:          string(op.Status),
		CreatedAt:       op.CreatedAt,
		UpdatedAt:       op.UpdatedAt,
	}
}

func operationToEntity(m *models.MiningOperation) *entities.MiningOperation {
	return &entities.MiningOperation{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		MinInvestment:   m.MinInvestment,
		MaxInvestment:   m.MaxInvestment,
		DailyReturn:     m.DailyReturn,
		DurationDays:    m.DurationDays,
		TotalCapacity:   m.TotalCapacity,
		CurrentCapacity: m.CurrentCapacity,
		Status:          entities.OperationStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
