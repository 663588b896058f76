package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/domain/repositories"
)

// KycUsecase handles document submission, admin review and the derived
// user-level verification status.
type KycUsecase struct {
	kycRepo   repositories.KycDocumentRepository
	userRepo  repositories.UserRepository
	notifRepo repositories.NotificationRepository
	uow       repositories.UnitOfWork
	auditor   *AuditRecorder
}

// NewKycUsecase creates a new KYC usecase
func NewKycUsecase(
	kycRepo repositories.KycDocumentRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	uow repositories.UnitOfWork,
	auditor *AuditRecorder,
) *KycUsecase {
	return &KycUsecase{
		kycRepo:   kycRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
		uow:       uow,
		auditor:   auditor,
	}
}

// Submit files a document for review. One document per type per user; a
// rejected document may be resubmitted, replacing the file and re-entering
// the queue.
func (u *KycUsecase) Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitDocumentInput) (*entities.KycDocument, error) {
	existing, err := u.kycRepo.GetByUserAndType(ctx, userID, input.Type)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if existing != nil {
			if existing.Status != entities.DocumentStatusRejected {
				return domainerrors.Conflict("document of this type already submitted")
			}
			if err := u.kycRepo.Resubmit(ctx, existing.ID, input.FileURL); err != nil {
				return err
			}
		} else {
			existing = &entities.KycDocument{
				UserID:  userID,
				Type:    input.Type,
				FileURL: input.FileURL,
				Status:  entities.DocumentStatusPending,
			}
			if err := u.kycRepo.Create(ctx, existing); err != nil {
				return err
			}
		}
		// A fresh pending document always puts the user under review.
		return u.userRepo.UpdateKYCStatus(ctx, userID, entities.KYCUnderReview)
	})
	if err != nil {
		return nil, err
	}

	return u.kycRepo.GetByID(ctx, existing.ID)
}

// ListByUser returns a user's documents
func (u *KycUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.KycDocument, error) {
	return u.kycRepo.ListByUser(ctx, userID)
}

// ListPending returns the admin review queue, oldest first
func (u *KycUsecase) ListPending(ctx context.Context, limit, offset int) ([]*entities.KycDocument, int64, error) {
	return u.kycRepo.ListPending(ctx, limit, offset)
}

// Review records an admin decision on a document and recomputes the user's
// aggregate status in the same transaction. Reviewing an already-decided
// document is a conflict, so two admins cannot both decide the same document.
func (u *KycUsecase) Review(ctx context.Context, actor Actor, docID uuid.UUID, input *entities.ReviewDocumentInput) (*entities.KycDocument, error) {
	doc, err := u.kycRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	status := entities.DocumentStatusRejected
	action := entities.AuditActionKYCReject
	if input.Approve {
		status = entities.DocumentStatusApproved
		action = entities.AuditActionKYCApprove
	}
	if status == entities.DocumentStatusRejected && input.Reason == "" {
		return nil, domainerrors.BadRequest("rejection requires a reason")
	}

	now := time.Now()
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.kycRepo.MarkReviewed(ctx, docID, status, actor.ID, input.Reason, now); err != nil {
			return err
		}

		aggregate, err := u.aggregateStatus(ctx, doc.UserID)
		if err != nil {
			return err
		}
		if err := u.userRepo.UpdateKYCStatus(ctx, doc.UserID, aggregate); err != nil {
			return err
		}

		title := "Identity document rejected"
		message := "Your " + string(doc.Type) + " was rejected: " + input.Reason
		if input.Approve {
			title = "Identity document approved"
			message = "Your " + string(doc.Type) + " was approved."
		}
		return u.notifRepo.Create(ctx, &entities.Notification{
			UserID:  doc.UserID,
			Type:    entities.NotificationTypeKYCDecision,
			Title:   title,
			Message: message,
		})
	})
	if err != nil {
		return nil, err
	}

	oldStatus := string(doc.Status)
	newStatus := string(status)
	u.auditor.Record(ctx, actor, action, "kyc_document", docID.String(), &oldStatus, &newStatus)

	return u.kycRepo.GetByID(ctx, docID)
}

// aggregateStatus derives the user-level status from the document set:
// APPROVED needs at least one approved document and none pending; REJECTED
// needs at least one rejected, none pending and none approved; anything else
// is UNDER_REVIEW.
func (u *KycUsecase) aggregateStatus(ctx context.Context, userID uuid.UUID) (entities.KYCStatus, error) {
	docs, err := u.kycRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	var pending, approved, rejected int
	for _, d := range docs {
		switch d.Status {
		case entities.DocumentStatusPending:
			pending++
		case entities.DocumentStatusApproved:
			approved++
		case entities.DocumentStatusRejected:
			rejected++
		}
	}

	switch {
	case pending == 0 && approved > 0:
		return entities.KYCApproved, nil
	case pending == 0 && approved == 0 && rejected > 0:
		return entities.KYCRejected, nil
	default:
		return entities.KYCUnderReview, nil
	}
}
