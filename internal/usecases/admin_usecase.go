package usecases

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/domain/repositories"
)

// AdminUsecase handles the back office: user management, mining operation
// CRUD and the audit trail. Every mutation is recorded through the injected
// AuditRecorder with before/after snapshots.
type AdminUsecase struct {
	userRepo      repositories.UserRepository
	operationRepo repositories.MiningOperationRepository
	auditRepo     repositories.AuditLogRepository
	auditor       *AuditRecorder
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	operationRepo repositories.MiningOperationRepository,
	auditRepo repositories.AuditLogRepository,
	auditor *AuditRecorder,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:      userRepo,
		operationRepo: operationRepo,
		auditRepo:     auditRepo,
		auditor:       auditor,
	}
}

// ListUsers lists users with optional name/email search
func (u *AdminUsecase) ListUsers(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error) {
	return u.userRepo.List(ctx, search, limit, offset)
}

// GetUser returns one user
func (u *AdminUsecase) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateUser applies the admin-mutable subset of a user and records the change
func (u *AdminUsecase) UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := snapshotJSON(user)

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	after := snapshotJSON(user)
	u.auditor.Record(ctx, actor, entities.AuditActionUserUpdate, "user", id.String(), before, after)

	return u.userRepo.GetByID(ctx, id)
}

// DeleteUser soft deletes a user and records the deletion
func (u *AdminUsecase) DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.userRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	before := snapshotJSON(user)
	u.auditor.Record(ctx, actor, entities.AuditActionUserDelete, "user", id.String(), before, nil)
	return nil
}

// CreateOperation creates a mining operation in DRAFT; it takes no
// investments until an admin activates it.
func (u *AdminUsecase) CreateOperation(ctx context.Context, actor Actor, input *entities.CreateOperationInput) (*entities.MiningOperation, error) {
	if input.MinInvestment > input.MaxInvestment {
		return nil, domainerrors.BadRequest("minInvestment exceeds maxInvestment")
	}

	op := &entities.MiningOperation{
		Name:          input.Name,
		Description:   input.Description,
		MinInvestment: input.MinInvestment,
		MaxInvestment: input.MaxInvestment,
		DailyReturn:   input.DailyReturn,
		DurationDays:  input.DurationDays,
		TotalCapacity: input.TotalCapacity,
		Status:        entities.OperationStatusDraft,
	}
	if err := u.operationRepo.Create(ctx, op); err != nil {
		return nil, err
	}

	after := snapshotJSON(op)
	u.auditor.Record(ctx, actor, entities.AuditActionOperationCreate, "mining_operation", op.ID.String(), nil, after)
	return op, nil
}

// UpdateOperation applies the mutable subset of an operation and records the
// change with before/after snapshots.
func (u *AdminUsecase) UpdateOperation(ctx context.Context, actor Actor, id uuid.UUID, input *entities.UpdateOperationInput) (*entities.MiningOperation, error) {
	op, err := u.operationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := snapshotJSON(op)

	if input.Name != nil {
		op.Name = *input.Name
	}
	if input.Description != nil {
		op.Description = *input.Description
	}
	if input.MinInvestment != nil {
		op.MinInvestment = *input.MinInvestment
	}
	if input.MaxInvestment != nil {
		op.MaxInvestment = *input.MaxInvestment
	}
	if input.DailyReturn != nil {
		op.DailyReturn = *input.DailyReturn
	}
	if input.DurationDays != nil {
		op.DurationDays = *input.DurationDays
	}
	if input.TotalCapacity != nil {
		op.TotalCapacity = *input.TotalCapacity
	}
	if input.Status != nil {
		op.Status = *input.Status
	}

	if op.MinInvestment > op.MaxInvestment {
		return nil, domainerrors.BadRequest("minInvestment exceeds maxInvestment")
	}
	// Shrinking below what is already committed would break the capacity
	// invariant for existing investments.
	if op.TotalCapacity < op.CurrentCapacity {
		return nil, domainerrors.BadRequest("totalCapacity below committed capacity")
	}

	if err := u.operationRepo.Update(ctx, op); err != nil {
		return nil, err
	}

	after := snapshotJSON(op)
	u.auditor.Record(ctx, actor, entities.AuditActionOperationUpdate, "mining_operation", id.String(), before, after)

	return u.operationRepo.GetByID(ctx, id)
}

// DeleteOperation soft deletes an operation and records the deletion
func (u *AdminUsecase) DeleteOperation(ctx context.Context, actor Actor, id uuid.UUID) error {
	op, err := u.operationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.operationRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	before := snapshotJSON(op)
	u.auditor.Record(ctx, actor, entities.AuditActionOperationDelete, "mining_operation", id.String(), before, nil)
	return nil
}

// ListOperations lists operations for the back office, any status
func (u *AdminUsecase) ListOperations(ctx context.Context, status entities.OperationStatus, limit, offset int) ([]*entities.MiningOperation, int64, error) {
	return u.operationRepo.List(ctx, status, limit, offset)
}

// ListAuditLogs lists the audit trail, newest first
func (u *AdminUsecase) ListAuditLogs(ctx context.Context, actorID uuid.UUID, resource string, limit, offset int) ([]*entities.AuditLog, int64, error) {
	return u.auditRepo.List(ctx, actorID, resource, limit, offset)
}

func snapshotJSON(v interface{}) *string {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
