package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	auditrepo "github.com/kukypng/oliver/internal/audit/repository"
	auditsvc "github.com/kukypng/oliver/internal/audit/service"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	budgetrepo "github.com/kukypng/oliver/internal/budget/repository"
	"github.com/kukypng/oliver/internal/clock"
	"github.com/kukypng/oliver/internal/events"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testInstant = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func setupBudgetService(t *testing.T) (*Service, *gorm.DB) {
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
	fixed := clock.FixedClock{Instant: testInstant}

	audit := auditsvc.NewService(auditsvc.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fixed,
		Repo:  auditrepo.Provide(),
	})

	svc := NewService(ServiceParam{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  fixed,
		Repo:   budgetrepo.Provide(),
		Audit:  audit,
		Outbox: events.NewOutbox(db, node),
	}).(*Service)
	return svc, db
}

func createBudget(t *testing.T, svc *Service, model string) *budgetdomain.Budget {
	t.Helper()
	budget, err := svc.Create(context.Background(), budgetdomain.CreateBudgetRequest{
		DeviceModel:    model,
		DeviceType:     "Smartphone",
		Issue:          "Troca de tela",
		CashPriceCents: 35000,
		WarrantyMonths: 3,
	})
	if err != nil {
		t.Fatalf("create budget: %v", err)
	}
	return budget
}

func TestCreateDefaultsValidity(t *testing.T) {
	svc, _ := setupBudgetService(t)

	budget := createBudget(t, svc, "iPhone 12")
	want := testInstant.AddDate(0, 0, defaultValidityDays)
	if !budget.ValidUntil.Equal(want) {
		t.Fatalf("valid_until = %v, want %v", budget.ValidUntil, want)
	}
	if budget.ID == 0 {
		t.Fatal("expected generated id")
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := setupBudgetService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  budgetdomain.CreateBudgetRequest
		want error
	}{
		{
			name: "empty device model",
			req:  budgetdomain.CreateBudgetRequest{DeviceModel: "  ", CashPriceCents: 100},
			want: budgetdomain.ErrInvalidDeviceModel,
		},
		{
			name: "negative cash price",
			req:  budgetdomain.CreateBudgetRequest{DeviceModel: "iPhone", CashPriceCents: -1},
			want: budgetdomain.ErrInvalidPrice,
		},
		{
			name: "zero installments",
			req: budgetdomain.CreateBudgetRequest{
				DeviceModel:  "iPhone",
				Installments: intPtr(0),
			},
			want: budgetdomain.ErrInvalidInstallments,
		},
		{
			name: "negative warranty",
			req:  budgetdomain.CreateBudgetRequest{DeviceModel: "iPhone", WarrantyMonths: -2},
			want: budgetdomain.ErrInvalidWarranty,
		},
		{
			name: "malformed valid_until",
			req: budgetdomain.CreateBudgetRequest{
				DeviceModel: "iPhone",
				ValidUntil:  strPtr("not-a-date"),
			},
			want: budgetdomain.ErrInvalidValidUntil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	svc, _ := setupBudgetService(t)
	budget := createBudget(t, svc, "iPhone 12")

	updated, err := svc.Update(context.Background(), budgetdomain.UpdateBudgetRequest{
		ID:             budget.ID.String(),
		DeviceModel:    strPtr("iPhone 13"),
		CashPriceCents: int64Ptr(42000),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DeviceModel != "iPhone 13" {
		t.Fatalf("device model = %q", updated.DeviceModel)
	}
	if updated.CashPriceCents != 42000 {
		t.Fatalf("cash price = %d", updated.CashPriceCents)
	}
	if updated.Issue != "Troca de tela" {
		t.Fatalf("issue changed unexpectedly: %q", updated.Issue)
	}
}

func TestTrashRestoreLifecycle(t *testing.T) {
	svc, _ := setupBudgetService(t)
	ctx := context.Background()
	budget := createBudget(t, svc, "iPhone 12")
	id := budget.ID.String()

	trashed, err := svc.MoveToTrash(ctx, id)
	if err != nil {
		t.Fatalf("trash: %v", err)
	}
	if !trashed.IsTrashed() {
		t.Fatal("expected trashed budget")
	}

	if _, err := svc.GetByID(ctx, id); !errors.Is(err, budgetdomain.ErrNotFound) {
		t.Fatalf("trashed budget visible via GetByID: %v", err)
	}
	if _, err := svc.MoveToTrash(ctx, id); !errors.Is(err, budgetdomain.ErrAlreadyTrashed) {
		t.Fatalf("double trash: %v", err)
	}

	restored, err := svc.Restore(ctx, id)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsTrashed() {
		t.Fatal("expected restored budget")
	}
	if _, err := svc.Restore(ctx, id); !errors.Is(err, budgetdomain.ErrNotTrashed) {
		t.Fatalf("double restore: %v", err)
	}
}

func TestPurgeRequiresTrash(t *testing.T) {
	svc, _ := setupBudgetService(t)
	ctx := context.Background()
	budget := createBudget(t, svc, "iPhone 12")
	id := budget.ID.String()

	if err := svc.Purge(ctx, id); !errors.Is(err, budgetdomain.ErrNotTrashed) {
		t.Fatalf("purge active budget: %v", err)
	}

	if _, err := svc.MoveToTrash(ctx, id); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if err := svc.Purge(ctx, id); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if err := svc.Purge(ctx, id); !errors.Is(err, budgetdomain.ErrNotFound) {
		t.Fatalf("purge twice: %v", err)
	}
}

func TestPurgeExpiredHonorsCutoff(t *testing.T) {
	svc, db := setupBudgetService(t)
	ctx := context.Background()

	old := createBudget(t, svc, "Galaxy S20")
	recent := createBudget(t, svc, "iPhone 12")
	for _, id := range []string{old.ID.String(), recent.ID.String()} {
		if _, err := svc.MoveToTrash(ctx, id); err != nil {
			t.Fatalf("trash: %v", err)
		}
	}

	oldDeletedAt := testInstant.AddDate(0, 0, -120)
	if err := db.Model(&budgetdomain.Budget{}).Where("id = ?", old.ID).
		Update("deleted_at", oldDeletedAt).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	cutoff := testInstant.AddDate(0, 0, -90)
	purged, err := svc.PurgeExpired(ctx, cutoff)
	if err != nil {
		t.Fatalf("purge expired: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}

	resp, err := svc.List(ctx, budgetdomain.ListBudgetsRequest{Trashed: true})
	if err != nil {
		t.Fatalf("list trash: %v", err)
	}
	if len(resp.Budgets) != 1 || resp.Budgets[0].ID != recent.ID {
		t.Fatalf("unexpected trash contents: %+v", resp.Budgets)
	}
}

func TestListSearchAndPagination(t *testing.T) {
	svc, _ := setupBudgetService(t)
	ctx := context.Background()

	createBudget(t, svc, "iPhone 12")
	createBudget(t, svc, "iPhone 13")
	createBudget(t, svc, "Galaxy S22")

	resp, err := svc.List(ctx, budgetdomain.ListBudgetsRequest{Search: "iPhone"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalSize != 2 || len(resp.Budgets) != 2 {
		t.Fatalf("search results = %d (total %d), want 2", len(resp.Budgets), resp.TotalSize)
	}

	first, err := svc.List(ctx, budgetdomain.ListBudgetsRequest{PageSize: 2})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(first.Budgets) != 2 || first.NextPageToken == "" {
		t.Fatalf("page 1 = %d budgets, token %q", len(first.Budgets), first.NextPageToken)
	}

	second, err := svc.List(ctx, budgetdomain.ListBudgetsRequest{PageSize: 2, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second.Budgets) != 1 || second.NextPageToken != "" {
		t.Fatalf("page 2 = %d budgets, token %q", len(second.Budgets), second.NextPageToken)
	}
}

func TestMutationsWriteAuditTrail(t *testing.T) {
	svc, db := setupBudgetService(t)
	ctx := context.Background()

	budget := createBudget(t, svc, "iPhone 12")
	if _, err := svc.MoveToTrash(ctx, budget.ID.String()); err != nil {
		t.Fatalf("trash: %v", err)
	}

	var actions []string
	if err := db.Model(&auditdomain.AuditLog{}).Order("id").Pluck("action", &actions).Error; err != nil {
		t.Fatalf("pluck actions: %v", err)
	}
	want := []string{auditdomain.ActionBudgetCreated, auditdomain.ActionBudgetTrashed}
	if len(actions) != len(want) {
		t.Fatalf("audit actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("audit actions = %v, want %v", actions, want)
		}
	}

	var eventCount int64
	if err := db.Model(&events.BudgetEvent{}).Count(&eventCount).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if eventCount != 2 {
		t.Fatalf("outbox events = %d, want 2", eventCount)
	}
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	svc, _ := setupBudgetService(t)

	if _, err := svc.GetByID(context.Background(), "not-an-id"); !errors.Is(err, budgetdomain.ErrInvalidID) {
		t.Fatalf("got %v, want %v", err, budgetdomain.ErrInvalidID)
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestCreateRollsBackWhenEventWriteFails(t *testing.T) {
	svc, db := setupBudgetService(t)

	if err := db.Migrator().DropTable(&events.BudgetEvent{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := svc.Create(context.Background(), budgetdomain.CreateBudgetRequest{
		DeviceModel:    "iPhone 12",
		DeviceType:     "Smartphone",
		Issue:          "Troca de tela",
		CashPriceCents: 35000,
		WarrantyMonths: 3,
	})
	if err == nil {
		t.Fatal("expected create to fail when the event row cannot be written")
	}

	var count int64
	if err := db.Model(&budgetdomain.Budget{}).Count(&count).Error; err != nil {
		t.Fatalf("count budgets: %v", err)
	}
	if count != 0 {
		t.Fatalf("budgets = %d, want 0 after rollback", count)
	}
}
