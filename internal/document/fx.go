package document

import (
	"github.com/kukypng/oliver/internal/cache"
	"github.com/kukypng/oliver/internal/config"
	"github.com/kukypng/oliver/internal/document/logo"
	"github.com/kukypng/oliver/internal/document/raster"
	"github.com/kukypng/oliver/internal/document/service"
	"github.com/kukypng/oliver/internal/document/vector"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("document.service",
	fx.Provide(func(cfg config.Config, log *zap.Logger) *logo.Resolver {
		var store cache.Cache[string, *logo.Resolved] = cache.NoopCache[string, *logo.Resolved]{}
		if cfg.Logo.CacheTTL > 0 {
			store = cache.NewTTLCache[string, *logo.Resolved]()
		}
		return logo.NewResolver(log,
			logo.WithTimeout(cfg.Logo.FetchTimeout),
			logo.WithCache(store, cfg.Logo.CacheTTL),
		)
	}),
	fx.Provide(vector.NewComposer),
	fx.Provide(raster.NewComposer),
	fx.Provide(service.NewService),
)
