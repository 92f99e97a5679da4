package repository

import (
	"context"
	"errors"

	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
	"gorm.io/gorm"
)

type shopRepository struct{}

// Provide returns the gorm-backed shop profile repository.
func Provide() shopdomain.Repository {
	return &shopRepository{}
}

func (r *shopRepository) Find(ctx context.Context, db *gorm.DB) (*shopdomain.ShopProfile, error) {
	var profile shopdomain.ShopProfile
	if err := db.WithContext(ctx).Order("id").First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *shopRepository) Insert(ctx context.Context, db *gorm.DB, profile *shopdomain.ShopProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *shopRepository) Update(ctx context.Context, db *gorm.DB, profile *shopdomain.ShopProfile) error {
	return db.WithContext(ctx).Save(profile).Error
}
