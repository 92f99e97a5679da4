package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search  string
	Trashed bool
	Offset  int
	Limit   int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, budget *Budget) error
	Update(ctx context.Context, db *gorm.DB, budget *Budget) error
	// FindByID returns nil when no row matches; trashed rows are only
	// visible when includeTrashed is set.
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID, includeTrashed bool) (*Budget, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Budget, int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteTrashedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
