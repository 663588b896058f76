package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
)

// KycDocumentRepository defines KYC document data operations
type KycDocumentRepository interface {
	Create(ctx context.Context, doc *entities.KycDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.KycDocument, error)
	GetByUserAndType(ctx context.Context, userID uuid.UUID, docType entities.DocumentType) (*entities.KycDocument, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.KycDocument, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entities.KycDocument, int64, error)

	// MarkReviewed sets the decision only if the document is still PENDING
	// (conditional update). Returns ErrAlreadyReviewed when it is not.
	MarkReviewed(ctx context.Context, id uuid.UUID, status entities.DocumentStatus, reviewedBy uuid.UUID, reason string, reviewedAt time.Time) error

	// Resubmit resets a REJECTED document back to PENDING with a new file,
	// clearing the previous decision. Returns ErrAlreadyExists when the
	// document is not in a resubmittable state.
	Resubmit(ctx context.Context, id uuid.UUID, fileURL string) error
}
