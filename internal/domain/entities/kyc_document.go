package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType identifies the kind of identity document
type DocumentType string

const (
	DocumentTypeIDCard         DocumentType = "ID_CARD"
	DocumentTypePassport       DocumentType = "PASSPORT"
	DocumentTypeDriverLicense  DocumentType = "DRIVER_LICENSE"
	DocumentTypeProofOfAddress DocumentType = "PROOF_OF_ADDRESS"
)

// DocumentStatus is the review state of one document
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "PENDING"
	DocumentStatusApproved DocumentStatus = "APPROVED"
	DocumentStatusRejected DocumentStatus = "REJECTED"
)

// KycDocument is one identity document of a user, one per (user, type).
// The user-level KYCStatus is derived from the document set, never set directly.
type KycDocument struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	Type         DocumentType   `json:"type"`
	FileURL      string         `json:"fileUrl"`
	Status       DocumentStatus `json:"status"`
	RejectReason null.String    `json:"rejectReason,omitempty"`
	ReviewedBy   null.String    `json:"reviewedBy,omitempty"`
	ReviewedAt   null.Time      `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// SubmitDocumentInput represents input for submitting a KYC document
type SubmitDocumentInput struct {
	Type    DocumentType `json:"type" binding:"required"`
	FileURL string       `json:"fileUrl" binding:"required,url"`
}

// ReviewDocumentInput represents an admin review decision
type ReviewDocumentInput struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}
