package domain

import (
	"context"
	"errors"

	"github.com/kukypng/oliver/internal/document/layout"
)

// Service generates shareable budget documents. Generation is stateless;
// every call is an independent transformation of its inputs.
type Service interface {
	// GeneratePDF returns the finished single-page A4 document.
	GeneratePDF(ctx context.Context, input layout.BudgetDocumentInput, profile layout.ShopProfile) ([]byte, error)
	// GenerateImage returns a PNG data URI for image-only sharing channels.
	GenerateImage(ctx context.Context, input layout.BudgetDocumentInput, profile layout.ShopProfile) (string, error)
}

var (
	ErrPDFGeneration   = errors.New("pdf_generation_failed")
	ErrImageGeneration = errors.New("image_generation_failed")
)

// IsValidationError reports whether err is an input validation sentinel.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, layout.ErrMissingDeviceModel),
		errors.Is(err, layout.ErrNegativePrice),
		errors.Is(err, layout.ErrInvalidInstallments),
		errors.Is(err, layout.ErrNegativeWarranty),
		errors.Is(err, layout.ErrInvalidCreatedAt),
		errors.Is(err, layout.ErrInvalidValidUntil):
		return true
	default:
		return false
	}
}
