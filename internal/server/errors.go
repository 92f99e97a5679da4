package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	documentdomain "github.com/kukypng/oliver/internal/document/domain"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
)

// APIError is the wire shape for every non-2xx response.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func newValidationError(field, code, message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

func invalidRequestError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func rateLimitedError() *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limited",
		Message: "too many document requests",
	}
}

// AbortWithError maps domain errors onto HTTP responses.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := statusForError(err)
	code := err.Error()
	if status == http.StatusInternalServerError {
		code = "internal_error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": &APIError{
		Status:  status,
		Code:    code,
		Message: messageForError(err, status),
	}})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, budgetdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, budgetdomain.ErrInvalidID),
		errors.Is(err, budgetdomain.ErrAlreadyTrashed),
		errors.Is(err, budgetdomain.ErrNotTrashed),
		errors.Is(err, budgetdomain.ErrInvalidDeviceModel),
		errors.Is(err, budgetdomain.ErrInvalidPrice),
		errors.Is(err, budgetdomain.ErrInvalidInstallments),
		errors.Is(err, budgetdomain.ErrInvalidWarranty),
		errors.Is(err, budgetdomain.ErrInvalidValidUntil),
		errors.Is(err, shopdomain.ErrInvalidShopName),
		errors.Is(err, shopdomain.ErrInvalidLogoURL):
		return http.StatusBadRequest
	case documentdomain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, documentdomain.ErrPDFGeneration),
		errors.Is(err, documentdomain.ErrImageGeneration):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func messageForError(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
