package trash

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	auditrepo "github.com/kukypng/oliver/internal/audit/repository"
	auditsvc "github.com/kukypng/oliver/internal/audit/service"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	budgetrepo "github.com/kukypng/oliver/internal/budget/repository"
	budgetsvc "github.com/kukypng/oliver/internal/budget/service"
	"github.com/kukypng/oliver/internal/clock"
	"github.com/kukypng/oliver/internal/events"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupSweeper(t *testing.T, now time.Time) (*Sweeper, budgetdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&budgetdomain.Budget{}, &auditdomain.AuditLog{}, &events.BudgetEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	fixed := clock.FixedClock{Instant: now}

	audit := auditsvc.NewService(auditsvc.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fixed,
		Repo:  auditrepo.Provide(),
	})
	budgets := budgetsvc.NewService(budgetsvc.ServiceParam{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  fixed,
		Repo:   budgetrepo.Provide(),
		Audit:  audit,
		Outbox: events.NewOutbox(db, node),
	})

	sweeper := NewSweeper(Params{
		Log:     zap.NewNop(),
		Clock:   fixed,
		Budgets: budgets,
		Config:  Config{RetentionDays: 90, SweepInterval: time.Hour},
	})
	return sweeper, budgets, db
}

func TestRunOncePurgesOnlyExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sweeper, budgets, db := setupSweeper(t, now)
	ctx := context.Background()

	expired, err := budgets.Create(ctx, budgetdomain.CreateBudgetRequest{DeviceModel: "Galaxy S20"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	fresh, err := budgets.Create(ctx, budgetdomain.CreateBudgetRequest{DeviceModel: "iPhone 12"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, id := range []string{expired.ID.String(), fresh.ID.String()} {
		if _, err := budgets.MoveToTrash(ctx, id); err != nil {
			t.Fatalf("trash: %v", err)
		}
	}

	backdate := now.AddDate(0, 0, -91)
	if err := db.Model(&budgetdomain.Budget{}).Where("id = ?", expired.ID).
		Update("deleted_at", backdate).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := sweeper.RunOnce(); err != nil {
		t.Fatalf("run once: %v", err)
	}

	resp, err := budgets.List(ctx, budgetdomain.ListBudgetsRequest{Trashed: true})
	if err != nil {
		t.Fatalf("list trash: %v", err)
	}
	if len(resp.Budgets) != 1 || resp.Budgets[0].ID != fresh.ID {
		t.Fatalf("unexpected trash contents: %+v", resp.Budgets)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.RetentionDays != 90 {
		t.Fatalf("retention = %d", cfg.RetentionDays)
	}
	if cfg.SweepInterval != time.Hour {
		t.Fatalf("interval = %v", cfg.SweepInterval)
	}
}
