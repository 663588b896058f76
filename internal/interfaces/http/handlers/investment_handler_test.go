package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"minevest.backend/internal/domain/entities"
	"minevest.backend/internal/usecases"
)

type investmentFixture struct {
	router      *gin.Engine
	users       *userRepoStub
	operations  *operationRepoStub
	investments *investmentRepoStub
	txs         *transactionRepoStub
	notifs      *notificationRepoStub
	userID      uuid.UUID
	operationID uuid.UUID
}

func newInvestmentFixture(t *testing.T) *investmentFixture {
	t.Helper()

	f := &investmentFixture{
		users:       newUserRepoStub(),
		operations:  newOperationRepoStub(),
		investments: newInvestmentRepoStub(),
		txs:         &transactionRepoStub{},
		notifs:      &notificationRepoStub{},
	}
	f.userID = seedWalletUser(f.users, 5000, entities.KYCApproved)
	f.operationID = seedOperation(f.operations, "SHA-256 Farm A", entities.OperationStatusActive)

	uc := usecases.NewInvestmentUsecase(f.investments, f.operations, f.users, f.txs, f.notifs, passthroughUoW{})
	h := NewInvestmentHandler(uc)

	r := gin.New()
	group := r.Group("/api/v1/investments", fakeAuth(f.userID))
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("/:id/withdraw", h.Withdraw)
	f.router = r
	return f
}

func TestInvestmentHandler_Create(t *testing.T) {
	f := newInvestmentFixture(t)

	w := performJSON(f.router, http.MethodPost, "/api/v1/investments", gin.H{
		"operationId": f.operationID,
		"amount":      1000.0,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, "ACTIVE", data["status"])
	require.Equal(t, 1000.0, data["amount"])
	require.Equal(t, 0.012, data["dailyReturn"])

	user, err := f.users.GetByID(context.Background(), f.userID)
	require.NoError(t, err)
	require.Equal(t, 4000.0, user.Balance)
	require.Equal(t, 1000.0, user.TotalInvested)

	op, err := f.operations.GetByID(context.Background(), f.operationID)
	require.NoError(t, err)
	require.Equal(t, 1000.0, op.CurrentCapacity)
	require.Len(t, f.txs.items, 1)
	require.Equal(t, entities.TransactionTypeInvestment, f.txs.items[0].Type)
}

func TestInvestmentHandler_CreateInsufficientBalance(t *testing.T) {
	f := newInvestmentFixture(t)

	w := performJSON(f.router, http.MethodPost, "/api/v1/investments", gin.H{
		"operationId": f.operationID,
		"amount":      9000.0,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decodeEnvelope(t, w)["error"].(map[string]interface{})
	require.Equal(t, "INSUFFICIENT_BALANCE", errBody["code"])

	require.Empty(t, f.investments.items)
}

func TestInvestmentHandler_CreateAmountBelowMinimum(t *testing.T) {
	f := newInvestmentFixture(t)

	w := performJSON(f.router, http.MethodPost, "/api/v1/investments", gin.H{
		"operationId": f.operationID,
		"amount":      50.0,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decodeEnvelope(t, w)["error"].(map[string]interface{})
	require.Equal(t, "INVALID_AMOUNT", errBody["code"])
}

func TestInvestmentHandler_GetAttachesAccruedEarnings(t *testing.T) {
	f := newInvestmentFixture(t)

	created := time.Now().Add(-5 * 24 * time.Hour)
	inv := &entities.Investment{
		ID:          uuid.New(),
		UserID:      f.userID,
		OperationID: f.operationID,
		Amount:      1000,
		DailyReturn: 0.012,
		Status:      entities.InvestmentStatusActive,
		CreatedAt:   created,
		EndDate:     created.Add(30 * 24 * time.Hour),
	}
	f.investments.items[inv.ID] = inv

	w := performJSON(f.router, http.MethodGet, "/api/v1/investments/"+inv.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.InDelta(t, 1000*0.012*5, data["accruedToDate"].(float64), 0.0001)
}

func TestInvestmentHandler_GetNotOwner(t *testing.T) {
	f := newInvestmentFixture(t)

	created := time.Now()
	inv := &entities.Investment{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		OperationID: f.operationID,
		Amount:      1000,
		DailyReturn: 0.012,
		Status:      entities.InvestmentStatusActive,
		CreatedAt:   created,
		EndDate:     created.Add(30 * 24 * time.Hour),
	}
	f.investments.items[inv.ID] = inv

	w := performJSON(f.router, http.MethodGet, "/api/v1/investments/"+inv.ID.String(), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvestmentHandler_Withdraw(t *testing.T) {
	f := newInvestmentFixture(t)

	created := time.Now().Add(-10 * 24 * time.Hour)
	inv := &entities.Investment{
		ID:          uuid.New(),
		UserID:      f.userID,
		OperationID: f.operationID,
		Amount:      1000,
		DailyReturn: 0.012,
		Status:      entities.InvestmentStatusActive,
		CreatedAt:   created,
		EndDate:     created.Add(30 * 24 * time.Hour),
	}
	f.investments.items[inv.ID] = inv
	f.operations.items[f.operationID].CurrentCapacity = 1000

	w := performJSON(f.router, http.MethodPost, "/api/v1/investments/"+inv.ID.String()+"/withdraw", nil)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	require.Equal(t, "investment withdrawn", envelope["message"])

	closed, err := f.investments.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestmentStatusWithdrawn, closed.Status)

	// Principal less the 10% penalty plus ten days of accrued earnings.
	user, err := f.users.GetByID(context.Background(), f.userID)
	require.NoError(t, err)
	require.InDelta(t, 5000+900+1000*0.012*10, user.Balance, 0.0001)

	op, err := f.operations.GetByID(context.Background(), f.operationID)
	require.NoError(t, err)
	require.Equal(t, 0.0, op.CurrentCapacity)
}

func TestInvestmentHandler_WithdrawTwiceConflicts(t *testing.T) {
	f := newInvestmentFixture(t)

	created := time.Now().Add(-24 * time.Hour)
	inv := &entities.Investment{
		ID:          uuid.New(),
		UserID:      f.userID,
		OperationID: f.operationID,
		Amount:      500,
		DailyReturn: 0.012,
		Status:      entities.InvestmentStatusActive,
		CreatedAt:   created,
		EndDate:     created.Add(30 * 24 * time.Hour),
	}
	f.investments.items[inv.ID] = inv
	f.operations.items[f.operationID].CurrentCapacity = 500

	first := performJSON(f.router, http.MethodPost, "/api/v1/investments/"+inv.ID.String()+"/withdraw", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := performJSON(f.router, http.MethodPost, "/api/v1/investments/"+inv.ID.String()+"/withdraw", nil)
	require.Equal(t, http.StatusConflict, second.Code)
}

func TestInvestmentHandler_ListReturnsOwnOnly(t *testing.T) {
	f := newInvestmentFixture(t)

	created := time.Now()
	for _, owner := range []uuid.UUID{f.userID, uuid.New()} {
		inv := &entities.Investment{
			ID:          uuid.New(),
			UserID:      owner,
			OperationID: f.operationID,
			Amount:      200,
			DailyReturn: 0.012,
			Status:      entities.InvestmentStatusActive,
			CreatedAt:   created,
			EndDate:     created.Add(30 * 24 * time.Hour),
		}
		f.investments.items[inv.ID] = inv
	}

	w := performJSON(f.router, http.MethodGet, "/api/v1/investments", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
}
