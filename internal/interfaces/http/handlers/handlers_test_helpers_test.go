package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/interfaces/http/middleware"
	"minevest.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	os.Exit(m.Run())
}

// passthroughUoW runs the callback directly; the stubs below are plain maps,
// so there is nothing transactional to coordinate.
type passthroughUoW struct{}

func (passthroughUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type userRepoStub struct {
	items map[uuid.UUID]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{items: map[uuid.UUID]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cpy := *user
	s.items[user.ID] = &cpy
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, item := range s.items {
		if item.Email == email {
			cpy := *item
			return &cpy, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByReferralCode(_ context.Context, code string) (*entities.User, error) {
	for _, item := range s.items {
		if item.ReferralCode == code {
			cpy := *item
			return &cpy, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Update(_ context.Context, user *entities.User) error {
	if _, ok := s.items[user.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cpy := *user
	s.items[user.ID] = &cpy
	return nil
}

func (s *userRepoStub) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.PasswordHash = passwordHash
	return nil
}

func (s *userRepoStub) UpdateKYCStatus(_ context.Context, id uuid.UUID, status entities.KYCStatus) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.KYCStatus = status
	return nil
}

func (s *userRepoStub) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.EmailVerifiedAt.SetValid(time.Now())
	return nil
}

func (s *userRepoStub) DebitForInvestment(_ context.Context, id uuid.UUID, amount float64) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.Balance < amount {
		return domainerrors.ErrInsufficientBalance
	}
	item.Balance -= amount
	item.TotalInvested += amount
	return nil
}

func (s *userRepoStub) DebitBalance(_ context.Context, id uuid.UUID, amount float64) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.Balance < amount {
		return domainerrors.ErrInsufficientBalance
	}
	item.Balance -= amount
	return nil
}

func (s *userRepoStub) CreditBalance(_ context.Context, id uuid.UUID, amount float64) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.Balance += amount
	return nil
}

func (s *userRepoStub) CreditEarnings(_ context.Context, id uuid.UUID, amount float64) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.Balance += amount
	item.TotalEarnings += amount
	return nil
}

func (s *userRepoStub) List(_ context.Context, _ string, _, _ int) ([]*entities.User, int64, error) {
	out := make([]*entities.User, 0, len(s.items))
	for _, item := range s.items {
		cpy := *item
		out = append(out, &cpy)
	}
	return out, int64(len(out)), nil
}

func (s *userRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type transactionRepoStub struct {
	items []*entities.Transaction
}

func (s *transactionRepoStub) Create(_ context.Context, tx *entities.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	cpy := *tx
	s.items = append(s.items, &cpy)
	return nil
}

func (s *transactionRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Transaction, error) {
	for _, item := range s.items {
		if item.ID == id {
			cpy := *item
			return &cpy, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *transactionRepoStub) GetByUserID(_ context.Context, userID uuid.UUID, txType entities.TransactionType, _, _ int) ([]*entities.Transaction, int64, error) {
	out := []*entities.Transaction{}
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		if txType != "" && item.Type != txType {
			continue
		}
		cpy := *item
		out = append(out, &cpy)
	}
	return out, int64(len(out)), nil
}

type operationRepoStub struct {
	items map[uuid.UUID]*entities.MiningOperation
}

func newOperationRepoStub() *operationRepoStub {
	return &operationRepoStub{items: map[uuid.UUID]*entities.MiningOperation{}}
}

func (s *operationRepoStub) Create(_ context.Context, op *entities.MiningOperation) error {
	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	cpy := *op
	s.items[op.ID] = &cpy
	return nil
}

func (s *operationRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.MiningOperation, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *operationRepoStub) Update(_ context.Context, op *entities.MiningOperation) error {
	if _, ok := s.items[op.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cpy := *op
	s.items[op.ID] = &cpy
	return nil
}

func (s *operationRepoStub) List(_ context.Context, status entities.OperationStatus, _, _ int) ([]*entities.MiningOperation, int64, error) {
	out := []*entities.MiningOperation{}
	for _, item := range s.items {
		if status != "" && item.Status != status {
			continue
		}
		cpy := *item
		out = append(out, &cpy)
	}
	return out, int64(len(out)), nil
}

func (s *operationRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *operationRepoStub) ReserveCapacity(_ context.Context, id uuid.UUID, amount float64) error {
	item, ok := s.items[id]
	if !ok || item.Status != entities.OperationStatusActive || item.CurrentCapacity+amount > item.TotalCapacity {
		return domainerrors.ErrCapacityExceeded
	}
	item.CurrentCapacity += amount
	return nil
}

func (s *operationRepoStub) ReleaseCapacity(_ context.Context, id uuid.UUID, amount float64) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.CurrentCapacity -= amount
	return nil
}

type investmentRepoStub struct {
	items map[uuid.UUID]*entities.Investment
}

func newInvestmentRepoStub() *investmentRepoStub {
	return &investmentRepoStub{items: map[uuid.UUID]*entities.Investment{}}
}

func (s *investmentRepoStub) Create(_ context.Context, inv *entities.Investment) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	cpy := *inv
	s.items[inv.ID] = &cpy
	return nil
}

func (s *investmentRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Investment, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *investmentRepoStub) GetByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]*entities.Investment, int64, error) {
	out := []*entities.Investment{}
	for _, item := range s.items {
		if item.UserID == userID {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	return out, int64(len(out)), nil
}

func (s *investmentRepoStub) ListMatured(_ context.Context, now time.Time, _ int) ([]*entities.Investment, error) {
	out := []*entities.Investment{}
	for _, item := range s.items {
		if item.Status == entities.InvestmentStatusActive && !item.EndDate.After(now) {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	return out, nil
}

func (s *investmentRepoStub) Close(_ context.Context, id uuid.UUID, status entities.InvestmentStatus, closedAt time.Time) error {
	item, ok := s.items[id]
	if !ok || item.Status != entities.InvestmentStatusActive {
		return domainerrors.ErrInvestmentNotActive
	}
	item.Status = status
	item.ClosedAt.SetValid(closedAt)
	return nil
}

type notificationRepoStub struct {
	items []*entities.Notification
}

func (s *notificationRepoStub) Create(_ context.Context, n *entities.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	cpy := *n
	s.items = append(s.items, &cpy)
	return nil
}

func (s *notificationRepoStub) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*entities.Notification, int64, error) {
	out := []*entities.Notification{}
	for _, item := range s.items {
		if item.UserID == userID {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	return out, int64(len(out)), nil
}

func (s *notificationRepoStub) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for _, item := range s.items {
		if item.ID == id && item.UserID == userID {
			item.IsRead = true
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *notificationRepoStub) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, item := range s.items {
		if item.UserID == userID {
			item.IsRead = true
		}
	}
	return nil
}

func (s *notificationRepoStub) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range s.items {
		if item.UserID == userID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

type kycRepoStub struct {
	items map[uuid.UUID]*entities.KycDocument
}

func newKycRepoStub() *kycRepoStub {
	return &kycRepoStub{items: map[uuid.UUID]*entities.KycDocument{}}
}

func (s *kycRepoStub) Create(_ context.Context, doc *entities.KycDocument) error {
	for _, item := range s.items {
		if item.UserID == doc.UserID && item.Type == doc.Type {
			return domainerrors.ErrAlreadyExists
		}
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	cpy := *doc
	s.items[doc.ID] = &cpy
	return nil
}

func (s *kycRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.KycDocument, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *kycRepoStub) GetByUserAndType(_ context.Context, userID uuid.UUID, docType entities.DocumentType) (*entities.KycDocument, error) {
	for _, item := range s.items {
		if item.UserID == userID && item.Type == docType {
			cpy := *item
			return &cpy, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *kycRepoStub) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.KycDocument, error) {
	out := []*entities.KycDocument{}
	for _, item := range s.items {
		if item.UserID == userID {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	return out, nil
}

func (s *kycRepoStub) ListPending(_ context.Context, _, _ int) ([]*entities.KycDocument, int64, error) {
	out := []*entities.KycDocument{}
	for _, item := range s.items {
		if item.Status == entities.DocumentStatusPending {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	return out, int64(len(out)), nil
}

func (s *kycRepoStub) MarkReviewed(_ context.Context, id uuid.UUID, status entities.DocumentStatus, reviewedBy uuid.UUID, reason string, reviewedAt time.Time) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.Status != entities.DocumentStatusPending {
		return domainerrors.ErrAlreadyReviewed
	}
	item.Status = status
	item.ReviewedBy.SetValid(reviewedBy.String())
	item.ReviewedAt.SetValid(reviewedAt)
	if reason != "" {
		item.RejectReason.SetValid(reason)
	}
	return nil
}

func (s *kycRepoStub) Resubmit(_ context.Context, id uuid.UUID, fileURL string) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.Status != entities.DocumentStatusRejected {
		return domainerrors.ErrAlreadyExists
	}
	item.Status = entities.DocumentStatusPending
	item.FileURL = fileURL
	item.RejectReason.Valid = false
	item.ReviewedBy.Valid = false
	item.ReviewedAt.Valid = false
	return nil
}

// fakeAuth injects an authenticated user the way AuthMiddleware would.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, "USER")
	}
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return envelope
}
