package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kukypng/oliver/pkg/db/pagination"
)

type CreateBudgetRequest struct {
	DeviceModel      string  `json:"device_model"`
	DeviceType       string  `json:"device_type"`
	Issue            string  `json:"issue"`
	CashPriceCents   int64   `json:"cash_price"`
	InstallmentPrice *int64  `json:"installment_price"`
	Installments     *int    `json:"installments"`
	WarrantyMonths   int     `json:"warranty_months"`
	ClientName       string  `json:"client_name"`
	ClientPhone      string  `json:"client_phone"`
	ValidUntil       *string `json:"valid_until"`
}

type UpdateBudgetRequest struct {
	ID               string  `json:"-"`
	DeviceModel      *string `json:"device_model"`
	DeviceType       *string `json:"device_type"`
	Issue            *string `json:"issue"`
	CashPriceCents   *int64  `json:"cash_price"`
	InstallmentPrice *int64  `json:"installment_price"`
	Installments     *int    `json:"installments"`
	WarrantyMonths   *int    `json:"warranty_months"`
	ClientName       *string `json:"client_name"`
	ClientPhone      *string `json:"client_phone"`
	ValidUntil       *string `json:"valid_until"`
}

type ListBudgetsRequest struct {
	PageToken string
	PageSize  int
	// Search matches device model, device type and client name.
	Search string
	// Trashed selects the trash listing instead of active budgets.
	Trashed bool
}

type ListBudgetsResponse struct {
	pagination.PageInfo
	Budgets []Budget `json:"budgets"`
}

type Service interface {
	Create(ctx context.Context, req CreateBudgetRequest) (*Budget, error)
	List(ctx context.Context, req ListBudgetsRequest) (ListBudgetsResponse, error)
	GetByID(ctx context.Context, id string) (*Budget, error)
	Update(ctx context.Context, req UpdateBudgetRequest) (*Budget, error)

	// MoveToTrash soft-deletes. The budget stays restorable until the
	// retention window closes.
	MoveToTrash(ctx context.Context, id string) (*Budget, error)
	Restore(ctx context.Context, id string) (*Budget, error)
	Purge(ctx context.Context, id string) error
	// PurgeExpired permanently removes budgets trashed before cutoff.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

var (
	ErrInvalidID           = errors.New("invalid_budget_id")
	ErrNotFound            = errors.New("budget_not_found")
	ErrAlreadyTrashed      = errors.New("budget_already_trashed")
	ErrNotTrashed          = errors.New("budget_not_trashed")
	ErrInvalidDeviceModel  = errors.New("invalid_device_model")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidInstallments = errors.New("invalid_installments")
	ErrInvalidWarranty     = errors.New("invalid_warranty")
	ErrInvalidValidUntil   = errors.New("invalid_valid_until")
)

func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
