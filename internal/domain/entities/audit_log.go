package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AuditAction names an admin mutation
type AuditAction string

const (
	AuditActionUserUpdate      AuditAction = "USER_UPDATE"
	AuditActionUserDelete      AuditAction = "USER_DELETE"
	AuditActionOperationCreate AuditAction = "OPERATION_CREATE"
	AuditActionOperationUpdate AuditAction = "OPERATION_UPDATE"
	AuditActionOperationDelete AuditAction = "OPERATION_DELETE"
	AuditActionKYCApprove      AuditAction = "KYC_APPROVE"
	AuditActionKYCReject       AuditAction = "KYC_REJECT"
)

// AuditLog is an append-only record of one admin mutation with before/after
// snapshots. Never updated or deleted once written.
type AuditLog struct {
	ID         uuid.UUID   `json:"id"`
	ActorID    uuid.UUID   `json:"actorId"`
	Action     AuditAction `json:"action"`
	Resource   string      `json:"resource"`
	ResourceID null.String `json:"resourceId,omitempty"`
	OldValue   null.String `json:"oldValue,omitempty"`
	NewValue   null.String `json:"newValue,omitempty"`
	IPAddress  string      `json:"ipAddress"`
	UserAgent  string      `json:"userAgent"`
	CreatedAt  time.Time   `json:"createdAt"`
}
