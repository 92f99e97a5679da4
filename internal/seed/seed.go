package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
	"gorm.io/gorm"
)

const defaultShopName = "Nome da Empresa"

// EnsureShopProfile seeds the single shop profile row for startup bootstrap.
func EnsureShopProfile(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile shopdomain.ShopProfile
		err := tx.WithContext(ctx).Order("id").First(&profile).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		profile = shopdomain.ShopProfile{
			ID:        node.Generate(),
			Name:      defaultShopName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&profile).Error
	})
}
