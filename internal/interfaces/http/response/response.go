package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/pkg/utils"
)

// Envelope is the uniform response shape of the API
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the sanitized error information exposed to clients
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ListData wraps a page of items with its pagination metadata
type ListData struct {
	Items interface{}          `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// SuccessWithMessage sends a success response with a human-readable message
func SuccessWithMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Paginated sends a page of items with its metadata
func Paginated(c *gin.Context, items interface{}, meta utils.PaginationMeta) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: ListData{Items: items, Meta: meta}})
}

// Error sends a sanitized error response. Domain sentinels are mapped to
// their status and stable code; anything unknown becomes a 500 without
// leaking internals.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromDomain(err)
	c.JSON(appErr.Status, Envelope{
		Success: false,
		Error:   &ErrorBody{Message: appErr.Message, Code: appErr.Code},
	})
}

// AbortError sends an error response and aborts the handler chain
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// ValidationError sends a 400 for malformed request bodies
func ValidationError(c *gin.Context, err error) {
	Error(c, domainerrors.BadRequest(err.Error()))
}
