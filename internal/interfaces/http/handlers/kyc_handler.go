package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"minevest.backend/internal/domain/entities"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/interfaces/http/middleware"
	"minevest.backend/internal/interfaces/http/response"
	"minevest.backend/internal/usecases"
)

// KycHandler handles the user side of identity verification
type KycHandler struct {
	kycUsecase *usecases.KycUsecase
}

// NewKycHandler creates a new KYC handler
func NewKycHandler(kycUsecase *usecases.KycUsecase) *KycHandler {
	return &KycHandler{kycUsecase: kycUsecase}
}

// Submit handles POST /api/v1/kyc/documents
func (h *KycHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	var input entities.SubmitDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	doc, err := h.kycUsecase.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, doc, "document submitted for review")
}

// Status handles GET /api/v1/kyc/documents
func (h *KycHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	docs, err := h.kycUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}
