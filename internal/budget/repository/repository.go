package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"gorm.io/gorm"
)

type budgetRepository struct{}

// Provide returns the gorm-backed budget repository.
func Provide() budgetdomain.Repository {
	return &budgetRepository{}
}

func (r *budgetRepository) Insert(ctx context.Context, db *gorm.DB, budget *budgetdomain.Budget) error {
	return db.WithContext(ctx).Create(budget).Error
}

func (r *budgetRepository) Update(ctx context.Context, db *gorm.DB, budget *budgetdomain.Budget) error {
	return db.WithContext(ctx).Save(budget).Error
}

func (r *budgetRepository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID, includeTrashed bool) (*budgetdomain.Budget, error) {
	query := db.WithContext(ctx).Where("id = ?", id)
	if !includeTrashed {
		query = query.Where("deleted_at IS NULL")
	}

	var budget budgetdomain.Budget
	if err := query.First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) List(ctx context.Context, db *gorm.DB, filter budgetdomain.ListFilter) ([]budgetdomain.Budget, int64, error) {
	query := db.WithContext(ctx).Model(&budgetdomain.Budget{})
	if filter.Trashed {
		query = query.Where("deleted_at IS NOT NULL")
	} else {
		query = query.Where("deleted_at IS NULL")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("device_model LIKE ? OR device_type LIKE ? OR client_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var budgets []budgetdomain.Budget
	order := "created_at DESC, id DESC"
	if filter.Trashed {
		order = "deleted_at DESC, id DESC"
	}
	if err := query.Order(order).Offset(filter.Offset).Limit(filter.Limit).Find(&budgets).Error; err != nil {
		return nil, 0, err
	}
	return budgets, total, nil
}

func (r *budgetRepository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&budgetdomain.Budget{}).Error
}

func (r *budgetRepository) DeleteTrashedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&budgetdomain.Budget{})
	return result.RowsAffected, result.Error
}
