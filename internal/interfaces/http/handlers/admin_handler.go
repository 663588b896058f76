package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/interfaces/http/middleware"
	"minevest.backend/internal/interfaces/http/response"
	"minevest.backend/internal/usecases"
	"minevest.backend/pkg/utils"
)

// AdminHandler handles the back office endpoints
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
	kycUsecase   *usecases.KycUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase, kycUsecase *usecases.KycUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase, kycUsecase: kycUsecase}
}

func actorFrom(c *gin.Context) (usecases.Actor, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return usecases.Actor{}, false
	}
	return usecases.Actor{
		ID:        actorID,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, true
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p := getPagination(c)
	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, users, utils.CalculateMeta(total, p.Page, p.Limit))
}

// GetUser handles GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.adminUsecase.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateUser handles PATCH /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.adminUsecase.UpdateUser(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.adminUsecase.DeleteUser(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "user deleted")
}

// ListOperations handles GET /api/v1/admin/operations
func (h *AdminHandler) ListOperations(c *gin.Context) {
	p := getPagination(c)
	status := entities.OperationStatus(c.Query("status"))

	ops, total, err := h.adminUsecase.ListOperations(c.Request.Context(), status, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, ops, utils.CalculateMeta(total, p.Page, p.Limit))
}

// CreateOperation handles POST /api/v1/admin/operations
func (h *AdminHandler) CreateOperation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	var input entities.CreateOperationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	op, err := h.adminUsecase.CreateOperation(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, op)
}

// UpdateOperation handles PATCH /api/v1/admin/operations/:id
func (h *AdminHandler) UpdateOperation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateOperationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	op, err := h.adminUsecase.UpdateOperation(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, op)
}

// DeleteOperation handles DELETE /api/v1/admin/operations/:id
func (h *AdminHandler) DeleteOperation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.adminUsecase.DeleteOperation(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "operation deleted")
}

// ListPendingDocuments handles GET /api/v1/admin/kyc/pending
func (h *AdminHandler) ListPendingDocuments(c *gin.Context) {
	p := getPagination(c)
	docs, total, err := h.kycUsecase.ListPending(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, docs, utils.CalculateMeta(total, p.Page, p.Limit))
}

// ReviewDocument handles POST /api/v1/admin/kyc/:id/review
func (h *AdminHandler) ReviewDocument(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ReviewDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	doc, err := h.kycUsecase.Review(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, doc)
}

// ListAuditLogs handles GET /api/v1/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	p := getPagination(c)

	actorID := uuid.Nil
	if raw := c.Query("actorId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid actorId"))
			return
		}
		actorID = parsed
	}

	logs, total, err := h.adminUsecase.ListAuditLogs(c.Request.Context(), actorID, c.Query("resource"), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, logs, utils.CalculateMeta(total, p.Page, p.Limit))
}
