package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenExpired        = errors.New("token expired")
	ErrSessionInvalid      = errors.New("session is no longer valid")
	ErrInvalidAmount       = errors.New("amount outside allowed bounds")
	ErrCapacityExceeded    = errors.New("operation capacity exceeded")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvestmentNotActive = errors.New("investment is not active")
	ErrNotOwner            = errors.New("resource belongs to another user")
	ErrOperationNotActive  = errors.New("mining operation is not active")
	ErrAlreadyReviewed     = errors.New("document already reviewed")
)

// Stable error codes exposed to API clients
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeCapacityExceeded    = "CAPACITY_EXCEEDED"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInvestmentNotActive = "INVESTMENT_NOT_ACTIVE"
	CodeNotOwner            = "NOT_OWNER"
	CodeAlreadyReviewed     = "DOCUMENT_ALREADY_REVIEWED"
	CodeInternal            = "INTERNAL_ERROR"
)

// AppError carries an HTTP status and a stable code alongside the message.
// Only Code and Message cross the trust boundary; Err stays server-side.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// FromDomain maps a sentinel domain error to an AppError with the right
// status and code. Unknown errors become a sanitized internal error.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound("resource not found")
	case errors.Is(err, ErrAlreadyExists):
		return Conflict("resource already exists")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return BadRequest(err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrSessionInvalid):
		return Unauthorized(err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password", err)
	case errors.Is(err, ErrForbidden):
		return Forbidden(err.Error())
	case errors.Is(err, ErrInvalidAmount):
		return NewAppError(http.StatusBadRequest, CodeInvalidAmount, err.Error(), err)
	case errors.Is(err, ErrCapacityExceeded):
		return NewAppError(http.StatusConflict, CodeCapacityExceeded, err.Error(), err)
	case errors.Is(err, ErrInsufficientBalance):
		return NewAppError(http.StatusBadRequest, CodeInsufficientBalance, err.Error(), err)
	case errors.Is(err, ErrInvestmentNotActive):
		return NewAppError(http.StatusConflict, CodeInvestmentNotActive, err.Error(), err)
	case errors.Is(err, ErrNotOwner):
		return NewAppError(http.StatusForbidden, CodeNotOwner, err.Error(), err)
	case errors.Is(err, ErrAlreadyReviewed):
		return NewAppError(http.StatusConflict, CodeAlreadyReviewed, err.Error(), err)
	case errors.Is(err, ErrOperationNotActive):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	default:
		return InternalError(err)
	}
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
		Err:     err,
	}
}
