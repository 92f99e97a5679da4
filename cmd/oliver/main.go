package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/kukypng/oliver/internal/audit"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	"github.com/kukypng/oliver/internal/budget"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"github.com/kukypng/oliver/internal/clock"
	"github.com/kukypng/oliver/internal/config"
	"github.com/kukypng/oliver/internal/document"
	"github.com/kukypng/oliver/internal/events"
	"github.com/kukypng/oliver/internal/observability/logger"
	"github.com/kukypng/oliver/internal/observability/metrics"
	"github.com/kukypng/oliver/internal/observability/tracing"
	"github.com/kukypng/oliver/internal/seed"
	"github.com/kukypng/oliver/internal/server"
	"github.com/kukypng/oliver/internal/shop"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
	"github.com/kukypng/oliver/internal/trash"
	"github.com/kukypng/oliver/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		metrics.Module,
		clock.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			if err := conn.AutoMigrate(
				&budgetdomain.Budget{},
				&shopdomain.ShopProfile{},
				&auditdomain.AuditLog{},
				&events.BudgetEvent{},
			); err != nil {
				return err
			}
			return seed.EnsureShopProfile(conn)
		}),
		events.Module,
		audit.Module,
		budget.Module,
		shop.Module,
		document.Module,
		trash.Module,
		server.Module,
	)
	app.Run()
}
