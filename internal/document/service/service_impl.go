package service

import (
	"context"
	"fmt"
	"time"

	documentdomain "github.com/kukypng/oliver/internal/document/domain"
	"github.com/kukypng/oliver/internal/document/layout"
	"github.com/kukypng/oliver/internal/document/logo"
	"github.com/kukypng/oliver/internal/document/raster"
	"github.com/kukypng/oliver/internal/document/vector"
	"github.com/kukypng/oliver/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log      *zap.Logger
	resolver *logo.Resolver
	vector   *vector.Composer
	raster   *raster.Composer
	metrics  *metrics.DocumentMetrics
}

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Resolver *logo.Resolver
	Vector   *vector.Composer
	Raster   *raster.Composer
	Metrics  *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) documentdomain.Service {
	return &Service{
		log:      p.Log.Named("document.service"),
		resolver: p.Resolver,
		vector:   p.Vector,
		raster:   p.Raster,
		metrics:  p.Metrics,
	}
}

func (s *Service) GeneratePDF(ctx context.Context, input layout.BudgetDocumentInput, profile layout.ShopProfile) ([]byte, error) {
	start := time.Now()

	doc, err := layout.Build(input, profile)
	if err != nil {
		return nil, err
	}

	resolved := s.resolveLogo(ctx, profile)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := s.vector.Compose(doc, resolved)
	if err != nil {
		s.metrics.IncGenerated("pdf", "failed")
		s.log.Error("pdf composition failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", documentdomain.ErrPDFGeneration, err)
	}

	s.metrics.IncGenerated("pdf", "success")
	s.metrics.ObserveGeneration("pdf", time.Since(start))
	return out, nil
}

func (s *Service) GenerateImage(ctx context.Context, input layout.BudgetDocumentInput, profile layout.ShopProfile) (string, error) {
	start := time.Now()

	doc, err := layout.Build(input, profile)
	if err != nil {
		return "", err
	}

	resolved := s.resolveLogo(ctx, profile)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	uri, err := s.raster.Compose(doc, resolved)
	if err != nil {
		s.metrics.IncGenerated("png", "failed")
		s.log.Error("image composition failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", documentdomain.ErrImageGeneration, err)
	}

	s.metrics.IncGenerated("png", "success")
	s.metrics.ObserveGeneration("png", time.Since(start))
	return uri, nil
}

// resolveLogo never fails a generation: a missing or unreachable logo
// downgrades to the placeholder.
func (s *Service) resolveLogo(ctx context.Context, profile layout.ShopProfile) *logo.Resolved {
	if profile.LogoURL == "" {
		return nil
	}
	resolved := s.resolver.Resolve(ctx, profile.LogoURL)
	if resolved == nil {
		s.metrics.IncLogoFallback()
	}
	return resolved
}
