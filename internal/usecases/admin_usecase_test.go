package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
)

func newAdminFixture() (*AdminUsecase, *mockUserRepo, *mockOperationRepo, *mockAuditRepo) {
	userRepo := new(mockUserRepo)
	operationRepo := new(mockOperationRepo)
	auditRepo := new(mockAuditRepo)

	uc := NewAdminUsecase(userRepo, operationRepo, auditRepo, NewAuditRecorder(auditRepo))
	return uc, userRepo, operationRepo, auditRepo
}

func TestAdminUsecase_UpdateUserRecordsAudit(t *testing.T) {
	uc, userRepo, _, auditRepo := newAdminFixture()
	ctx := context.Background()

	user := activeUser("password123")
	actor := Actor{ID: uuid.New(), IP: "10.0.0.1", UserAgent: "admin-ui"}
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*entities.User")).Return(nil)
	auditRepo.On("Create", ctx, mock.MatchedBy(func(l *entities.AuditLog) bool {
		return l.Action == entities.AuditActionUserUpdate &&
			l.ActorID == actor.ID &&
			l.Resource == "user" &&
			l.OldValue.Valid && l.NewValue.Valid
	})).Return(nil)

	status := entities.UserStatusSuspended
	updated, err := uc.UpdateUser(ctx, actor, user.ID, &entities.UpdateUserInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, entities.UserStatusSuspended, updated.Status)
	auditRepo.AssertExpectations(t)
}

func TestAdminUsecase_DeleteUserRecordsAudit(t *testing.T) {
	uc, userRepo, _, auditRepo := newAdminFixture()
	ctx := context.Background()

	user := activeUser("password123")
	actor := Actor{ID: uuid.New()}
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	userRepo.On("SoftDelete", ctx, user.ID).Return(nil)
	auditRepo.On("Create", ctx, mock.MatchedBy(func(l *entities.AuditLog) bool {
		return l.Action == entities.AuditActionUserDelete && l.OldValue.Valid && !l.NewValue.Valid
	})).Return(nil)

	require.NoError(t, uc.DeleteUser(ctx, actor, user.ID))
	auditRepo.AssertExpectations(t)
}

func TestAdminUsecase_CreateOperationStartsDraft(t *testing.T) {
	uc, _, operationRepo, auditRepo := newAdminFixture()
	ctx := context.Background()

	operationRepo.On("Create", ctx, mock.AnythingOfType("*entities.MiningOperation")).Return(nil)
	auditRepo.On("Create", ctx, mock.MatchedBy(func(l *entities.AuditLog) bool {
		return l.Action == entities.AuditActionOperationCreate
	})).Return(nil)

	op, err := uc.CreateOperation(ctx, Actor{ID: uuid.New()}, &entities.CreateOperationInput{
		Name:          "Hashrate Alpha",
		MinInvestment: 100,
		MaxInvestment: 10000,
		DailyReturn:   0.01,
		DurationDays:  30,
		TotalCapacity: 100000,
	})
	require.NoError(t, err)
	require.Equal(t, entities.OperationStatusDraft, op.Status)
	auditRepo.AssertExpectations(t)
}

func TestAdminUsecase_CreateOperationInvalidBounds(t *testing.T) {
	uc, _, operationRepo, _ := newAdminFixture()

	_, err := uc.CreateOperation(context.Background(), Actor{ID: uuid.New()}, &entities.CreateOperationInput{
		Name:          "Broken",
		MinInvestment: 10000,
		MaxInvestment: 100,
		DailyReturn:   0.01,
		DurationDays:  30,
		TotalCapacity: 100000,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	operationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUsecase_UpdateOperation(t *testing.T) {
	uc, _, operationRepo, auditRepo := newAdminFixture()
	ctx := context.Background()

	op := activeOperation()
	operationRepo.On("GetByID", ctx, op.ID).Return(op, nil)
	operationRepo.On("Update", ctx, mock.AnythingOfType("*entities.MiningOperation")).Return(nil)
	auditRepo.On("Create", ctx, mock.MatchedBy(func(l *entities.AuditLog) bool {
		return l.Action == entities.AuditActionOperationUpdate && l.OldValue.Valid && l.NewValue.Valid
	})).Return(nil)

	status := entities.OperationStatusPaused
	updated, err := uc.UpdateOperation(ctx, Actor{ID: uuid.New()}, op.ID, &entities.UpdateOperationInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, entities.OperationStatusPaused, updated.Status)
	auditRepo.AssertExpectations(t)
}

func TestAdminUsecase_UpdateOperationCannotShrinkBelowCommitted(t *testing.T) {
	uc, _, operationRepo, _ := newAdminFixture()
	ctx := context.Background()

	op := activeOperation()
	op.CurrentCapacity = 50000
	operationRepo.On("GetByID", ctx, op.ID).Return(op, nil)

	shrunk := 40000.0
	_, err := uc.UpdateOperation(ctx, Actor{ID: uuid.New()}, op.ID, &entities.UpdateOperationInput{TotalCapacity: &shrunk})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	operationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdminUsecase_AuditSinkFailureDoesNotBlockMutation(t *testing.T) {
	uc, userRepo, _, auditRepo := newAdminFixture()
	ctx := context.Background()

	user := activeUser("password123")
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	userRepo.On("SoftDelete", ctx, user.ID).Return(nil)
	auditRepo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrNotFound)

	require.NoError(t, uc.DeleteUser(ctx, Actor{ID: uuid.New()}, user.ID))
}

func TestAdminUsecase_ListAuditLogs(t *testing.T) {
	uc, _, _, auditRepo := newAdminFixture()
	ctx := context.Background()

	actorID := uuid.New()
	auditRepo.On("List", ctx, actorID, "user", 20, 0).
		Return([]*entities.AuditLog{{ActorID: actorID, Resource: "user"}}, int64(1), nil)

	logs, total, err := uc.ListAuditLogs(ctx, actorID, "user", 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
}
