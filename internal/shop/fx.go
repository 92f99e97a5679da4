package shop

import (
	"github.com/kukypng/oliver/internal/shop/repository"
	"github.com/kukypng/oliver/internal/shop/service"
	"go.uber.org/fx"
)

var Module = fx.Module("shop.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
