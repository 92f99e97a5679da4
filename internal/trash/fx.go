package trash

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("trash.sweeper",
	fx.Provide(FromAppConfig),
	fx.Provide(NewSweeper),
	fx.Invoke(runSweeper),
)

func runSweeper(lc fx.Lifecycle, sweeper *Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go sweeper.RunForever(ctx)
			return nil
		},
	})
}
