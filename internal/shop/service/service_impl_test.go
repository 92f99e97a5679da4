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
	"github.com/kukypng/oliver/internal/clock"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
	shoprepo "github.com/kukypng/oliver/internal/shop/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupShopService(t *testing.T) shopdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&shopdomain.ShopProfile{}, &auditdomain.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	fixed := clock.FixedClock{Instant: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)}

	audit := auditsvc.NewService(auditsvc.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fixed,
		Repo:  auditrepo.Provide(),
	})

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fixed,
		Repo:  shoprepo.Provide(),
		Audit: audit,
	})
}

func TestGetCreatesDefaultProfile(t *testing.T) {
	svc := setupShopService(t)
	ctx := context.Background()

	profile, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if profile.Name != defaultShopName {
		t.Fatalf("name = %q, want %q", profile.Name, defaultShopName)
	}

	again, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.ID != profile.ID {
		t.Fatalf("second get created a new row: %v != %v", again.ID, profile.ID)
	}
}

func TestUpdateAppliesFields(t *testing.T) {
	svc := setupShopService(t)
	ctx := context.Background()

	name := "Assistência do João"
	logo := "https://cdn.example.com/logo.png"
	profile, err := svc.Update(ctx, shopdomain.UpdateShopProfileRequest{
		Name:    &name,
		LogoURL: &logo,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if profile.Name != name || profile.LogoURL != logo {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestUpdateRejectsBlankName(t *testing.T) {
	svc := setupShopService(t)

	blank := "   "
	_, err := svc.Update(context.Background(), shopdomain.UpdateShopProfileRequest{Name: &blank})
	if !errors.Is(err, shopdomain.ErrInvalidShopName) {
		t.Fatalf("got %v, want %v", err, shopdomain.ErrInvalidShopName)
	}
}

func TestUpdateRejectsBadLogoURL(t *testing.T) {
	svc := setupShopService(t)
	ctx := context.Background()

	bad := "ftp://example.com/logo.png"
	if _, err := svc.Update(ctx, shopdomain.UpdateShopProfileRequest{LogoURL: &bad}); !errors.Is(err, shopdomain.ErrInvalidLogoURL) {
		t.Fatalf("got %v, want %v", err, shopdomain.ErrInvalidLogoURL)
	}

	empty := ""
	if _, err := svc.Update(ctx, shopdomain.UpdateShopProfileRequest{LogoURL: &empty}); err != nil {
		t.Fatalf("clearing logo url: %v", err)
	}
}
