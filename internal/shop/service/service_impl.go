package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	"github.com/kukypng/oliver/internal/clock"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultShopName = "Nome da Empresa"

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	shoprepo shopdomain.Repository
	audit    auditdomain.Service
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  shopdomain.Repository
	Audit auditdomain.Service
}

func NewService(p ServiceParam) shopdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("shop.service"),
		genID: p.GenID,
		clock: p.Clock,

		shoprepo: p.Repo,
		audit:    p.Audit,
	}
}

func (s *Service) Get(ctx context.Context) (*shopdomain.ShopProfile, error) {
	profile, err := s.shoprepo.Find(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	now := s.clock.Now()
	profile = &shopdomain.ShopProfile{
		ID:        s.genID.Generate(),
		Name:      defaultShopName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.shoprepo.Insert(ctx, s.db, profile); err != nil {
		return nil, err
	}
	s.log.Info("seeded default shop profile", zap.String("id", profile.ID.String()))
	return profile, nil
}

func (s *Service) Update(ctx context.Context, req shopdomain.UpdateShopProfileRequest) (*shopdomain.ShopProfile, error) {
	profile, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, shopdomain.ErrInvalidShopName
		}
		profile.Name = name
	}
	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CNPJ != nil {
		profile.CNPJ = strings.TrimSpace(*req.CNPJ)
	}
	if req.LogoURL != nil {
		logoURL := strings.TrimSpace(*req.LogoURL)
		if logoURL != "" {
			parsed, err := url.Parse(logoURL)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
				return nil, shopdomain.ErrInvalidLogoURL
			}
		}
		profile.LogoURL = logoURL
	}

	profile.UpdatedAt = s.clock.Now()
	if err := s.shoprepo.Update(ctx, s.db, profile); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionShopUpdated,
		TargetType: "shop_profile",
		TargetID:   profile.ID.String(),
	})

	return profile, nil
}
