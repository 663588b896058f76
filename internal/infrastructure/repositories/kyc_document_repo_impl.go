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

// KycDocumentRepository implements KYC document data operations
type KycDocumentRepository struct {
	db *gorm.DB
}

// NewKycDocumentRepository creates a new KYC document repository
func NewKycDocumentRepository(db *gorm.DB) *KycDocumentRepository {
	return &KycDocumentRepository{db: db}
}

// Create creates a new KYC document
func (r *KycDocumentRepository) Create(ctx context.Context, doc *entities.KycDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	m := kycDocumentToModel(doc)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a KYC document by ID
func (r *KycDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.KycDocument, error) {
	var m models.KycDocument
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return kycDocumentToEntity(&m), nil
}

// GetByUserAndType gets the document of the given type for a user
func (r *KycDocumentRepository) GetByUserAndType(ctx context.Context, userID uuid.UUID, docType entities.DocumentType) (*entities.KycDocument, error) {
	var m models.KycDocument
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, docType).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return kycDocumentToEntity(&m), nil
}

// ListByUser lists all documents of a user
func (r *KycDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.KycDocument, error) {
	var docModels []models.KycDocument
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).Order("created_at ASC").Find(&docModels).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*entities.KycDocument, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, kycDocumentToEntity(&docModels[i]))
	}
	return docs, nil
}

// ListPending lists pending documents across all users, oldest first
func (r *KycDocumentRepository) ListPending(ctx context.Context, limit, offset int) ([]*entities.KycDocument, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.KycDocument{}).
		Where("status = ?", entities.DocumentStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docModels []models.KycDocument
	if err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&docModels).Error; err != nil {
		return nil, 0, err
	}

	docs := make([]*entities.KycDocument, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, kycDocumentToEntity(&docModels[i]))
	}
	return docs, total, nil
}

// MarkReviewed records a decision only while the document is still PENDING,
// so a second reviewer cannot overwrite the first decision.
func (r *KycDocumentRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status entities.DocumentStatus, reviewedBy uuid.UUID, reason string, reviewedAt time.Time) error {
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": reviewedBy.String(),
		"reviewed_at": reviewedAt,
		"updated_at":  time.Now(),
	}
	if reason != "" {
		updates["reject_reason"] = reason
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.KycDocument{}).
		Where("id = ? AND status = ?", id, entities.DocumentStatusPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyReviewed
	}
	return nil
}

// Resubmit replaces the file of a REJECTED document and puts it back in the
// review queue. Only rejected documents may be resubmitted.
func (r *KycDocumentRepository) Resubmit(ctx context.Context, id uuid.UUID, fileURL string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.KycDocument{}).
		Where("id = ? AND status = ?", id, entities.DocumentStatusRejected).
		Updates(map[string]interface{}{
			"file_url":      fileURL,
			"status":        entities.DocumentStatusPending,
			"reject_reason": nil,
			"reviewed_by":   nil,
			"reviewed_at":   nil,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyExists
	}
	return nil
}

func kycDocumentToModel(doc *entities.KycDocument) *models.KycDocument {
	m := &models.KycDocument{
		ID:           doc.ID,
		UserID:       doc.UserID,
		Type:         string(doc.Type),
		FileURL:      doc.FileURL,
		Status:       string(doc.Status),
		RejectReason: doc.RejectReason.Ptr(),
		ReviewedBy:   doc.ReviewedBy.Ptr(),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	if doc.ReviewedAt.Valid {
		t := doc.ReviewedAt.Time
		m.ReviewedAt = &t
	}
	return m
}

func kycDocumentToEntity(m *models.KycDocument) *entities.KycDocument {
	return &entities.KycDocument{
		ID:           m.ID,
		UserID:       m.UserID,
		Type:         entities.DocumentType(m.Type),
		FileURL:      m.FileURL,
		Status:       entities.DocumentStatus(m.Status),
		RejectReason: null.StringFromPtr(m.RejectReason),
		ReviewedBy:   null.StringFromPtr(m.ReviewedBy),
		ReviewedAt:   null.TimeFromPtr(m.ReviewedAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
