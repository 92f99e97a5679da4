package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kukypng/oliver/internal/document/layout"
)

// Budget is one service quote for a device repair.
type Budget struct {
	ID                    snowflake.ID `gorm:"primaryKey" json:"id"`
	DeviceModel           string       `gorm:"type:text;not null" json:"device_model"`
	DeviceType            string       `gorm:"type:text" json:"device_type"`
	Issue                 string       `gorm:"type:text" json:"issue"`
	CashPriceCents        int64        `gorm:"not null" json:"cash_price"`
	InstallmentPriceCents *int64       `json:"installment_price,omitempty"`
	Installments          *int         `json:"installments,omitempty"`
	WarrantyMonths        int          `gorm:"not null" json:"warranty_months"`
	ClientName            string       `gorm:"type:text" json:"client_name,omitempty"`
	ClientPhone           string       `gorm:"type:text" json:"client_phone,omitempty"`
	ValidUntil            time.Time    `gorm:"not null" json:"valid_until"`
	CreatedAt             time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	// DeletedAt marks the budget as trashed. Trashed budgets stay
	// restorable until the retention sweeper purges them.
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Budget) TableName() string { return "budgets" }

// IsTrashed reports whether the budget currently sits in the trash.
func (b Budget) IsTrashed() bool { return b.DeletedAt != nil }

// DocumentInput maps the stored budget onto the generator's input model.
func (b Budget) DocumentInput() layout.BudgetDocumentInput {
	return layout.BudgetDocumentInput{
		DeviceModel:           b.DeviceModel,
		DeviceType:            b.DeviceType,
		Issue:                 b.Issue,
		CashPriceCents:        b.CashPriceCents,
		InstallmentPriceCents: b.InstallmentPriceCents,
		Installments:          b.Installments,
		WarrantyMonths:        b.WarrantyMonths,
		CreatedAt:             b.CreatedAt.UTC().Format(time.RFC3339),
		ValidUntil:            b.ValidUntil.UTC().Format(time.RFC3339),
		ClientName:            b.ClientName,
		ClientPhone:           b.ClientPhone,
	}
}
