package domain

import (
	"context"
	"errors"
)

type UpdateShopProfileRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	CNPJ    *string `json:"cnpj"`
	LogoURL *string `json:"logo_url"`
}

type Service interface {
	// Get returns the profile, creating the default row when none exists.
	Get(ctx context.Context) (*ShopProfile, error)
	Update(ctx context.Context, req UpdateShopProfileRequest) (*ShopProfile, error)
}

var (
	ErrInvalidShopName = errors.New("invalid_shop_name")
	ErrInvalidLogoURL  = errors.New("invalid_logo_url")
)
