package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/infrastructure/models"
)

// InvestmentRepository implements investment data operations
type InvestmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create creates a new investment
func (r *InvestmentRepository) Create(ctx context.Context, inv *entities.Investment) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	m := investmentToModel(inv)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets an investment by ID
func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	var m models.Investment
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return investmentToEntity(&m), nil
}

// GetByUserID lists a user's investments, newest first
func (r *InvestmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Investment, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Investment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invModels []models.Investment
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&invModels).Error; err != nil {
		return nil, 0, err
	}

	invs := make([]*entities.Investment, 0, len(invModels))
	for i := range invModels {
		invs = append(invs, investmentToEntity(&invModels[i]))
	}
	return invs, total, nil
}

// ListMatured returns ACTIVE investments whose end date has passed
func (r *InvestmentRepository) ListMatured(ctx context.Context, now time.Time, limit int) ([]*entities.Investment, error) {
	var invModels []models.Investment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND end_date <= ?", entities.InvestmentStatusActive, now).
		Order("end_date ASC").Limit(limit).Find(&invModels).Error
	if err != nil {
		return nil, err
	}

	invs := make([]*entities.Investment, 0, len(invModels))
	for i := range invModels {
		invs = append(invs, investmentToEntity(&invModels[i]))
	}
	return invs, nil
}

// Close transitions an ACTIVE investment to a terminal status. The status
// guard in the WHERE clause makes concurrent close attempts race-safe.
func (r *InvestmentRepository) Close(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus, closedAt time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Investment{}).
		Where("id = ? AND status = ?", id, entities.InvestmentStatusActive).
		Updates(map[string]interface{}{
			"status":     status,
			"closed_at":  closedAt,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvestmentNotActive
	}
	return nil
}

func investmentToModel(inv *entities.Investment) *models.Investment {
	m := &models.Investment{
		ID:          inv.ID,
		UserID:      inv.UserID,
		OperationID: inv.OperationID,
		Amount:      inv.Amount,
		DailyReturn: inv.DailyReturn,
		Status:      string(inv.Status),
		EndDate:     inv.EndDate,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
	if inv.ClosedAt.Valid {
		t := inv.ClosedAt.Time
		m.ClosedAt = &t
	}
	return m
}

func investmentToEntity(m *models.Investment) *entities.Investment {
	return &entities.Investment{
		ID:          m.ID,
		UserID:      m.UserID,
		OperationID: m.OperationID,
		Amount:      m.Amount,
		DailyReturn: m.DailyReturn,
		Status:      entities.InvestmentStatus(m.Status),
		EndDate:     m.EndDate,
		ClosedAt:    null.TimeFromPtr(m.ClosedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
