package layout

import (
	"errors"
	"strings"
	"time"
)

// BudgetDocumentInput is the read-only budget data a document is built from.
type BudgetDocumentInput struct {
	DeviceModel           string
	DeviceType            string
	Issue                 string
	CashPriceCents        int64
	InstallmentPriceCents *int64
	Installments          *int
	WarrantyMonths        int
	CreatedAt             string
	ValidUntil            string
	ClientName            string
	ClientPhone           string
}

// ShopProfile carries the shop branding rendered in the document header.
type ShopProfile struct {
	Name    string
	Address string
	Phone   string
	CNPJ    string
	LogoURL string
}

var (
	ErrMissingDeviceModel  = errors.New("missing_device_model")
	ErrNegativePrice       = errors.New("negative_price")
	ErrInvalidInstallments = errors.New("invalid_installments")
	ErrNegativeWarranty    = errors.New("negative_warranty")
	ErrInvalidCreatedAt    = errors.New("invalid_created_at")
	ErrInvalidValidUntil   = errors.New("invalid_valid_until")
)

// ValidateInput rejects inputs that would otherwise flow undefined values
// into the formatters. Malformed data fails here, before any drawing.
func ValidateInput(input BudgetDocumentInput) error {
	if strings.TrimSpace(input.DeviceModel) == "" {
		return ErrMissingDeviceModel
	}
	if input.CashPriceCents < 0 {
		return ErrNegativePrice
	}
	if input.InstallmentPriceCents != nil && *input.InstallmentPriceCents < 0 {
		return ErrNegativePrice
	}
	if input.Installments != nil && *input.Installments < 1 {
		return ErrInvalidInstallments
	}
	if input.WarrantyMonths < 0 {
		return ErrNegativeWarranty
	}
	if _, err := ParseDate(input.CreatedAt); err != nil {
		return ErrInvalidCreatedAt
	}
	if _, err := ParseDate(input.ValidUntil); err != nil {
		return ErrInvalidValidUntil
	}
	return nil
}

// ParseDate accepts RFC 3339 timestamps or bare calendar dates.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty_date")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
