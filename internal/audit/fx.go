package audit

import (
	"github.com/kukypng/oliver/internal/audit/repository"
	"github.com/kukypng/oliver/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
