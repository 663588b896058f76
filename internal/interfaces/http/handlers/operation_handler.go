package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"minevest.backend/internal/interfaces/http/response"
	"minevest.backend/internal/usecases"
	"minevest.backend/pkg/utils"
)

// OperationHandler serves the public mining operation catalogue
type OperationHandler struct {
	operationUsecase *usecases.OperationUsecase
}

// NewOperationHandler creates a new operation handler
func NewOperationHandler(operationUsecase *usecases.OperationUsecase) *OperationHandler {
	return &OperationHandler{operationUsecase: operationUsecase}
}

// List handles GET /api/v1/operations
func (h *OperationHandler) List(c *gin.Context) {
	p := getPagination(c)

	ops, total, err := h.operationUsecase.List(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, ops, utils.CalculateMeta(total, p.Page, p.Limit))
}

// Get handles GET /api/v1/operations/:id
func (h *OperationHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	op, err := h.operationUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, op)
}
