package budget

import (
	"github.com/kukypng/oliver/internal/budget/repository"
	"github.com/kukypng/oliver/internal/budget/service"
	"go.uber.org/fx"
)

var Module = fx.Module("budget.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
