package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kukypng/oliver/internal/document/layout"
)

// ShopProfile holds the shop settings printed on every budget document.
// Exactly one row exists per installation.
type ShopProfile struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Address   string       `gorm:"type:text" json:"address"`
	Phone     string       `gorm:"type:text" json:"phone"`
	CNPJ      string       `gorm:"type:text" json:"cnpj,omitempty"`
	LogoURL   string       `gorm:"type:text" json:"logo_url,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ShopProfile) TableName() string { return "shop_profiles" }

// DocumentProfile maps the stored profile onto the generator's input model.
func (p ShopProfile) DocumentProfile() layout.ShopProfile {
	return layout.ShopProfile{
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		CNPJ:    p.CNPJ,
		LogoURL: p.LogoURL,
	}
}
