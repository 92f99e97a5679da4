package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Find returns nil when no profile row exists yet.
	Find(ctx context.Context, db *gorm.DB) (*ShopProfile, error)
	Insert(ctx context.Context, db *gorm.DB, profile *ShopProfile) error
	Update(ctx context.Context, db *gorm.DB, profile *ShopProfile) error
}
