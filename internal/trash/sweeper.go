package trash

import (
	"context"
	"errors"
	"time"

	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"github.com/kukypng/oliver/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Budgets budgetdomain.Service
	Config  Config `optional:"true"`
}

// Sweeper permanently purges budgets whose trash retention has expired.
type Sweeper struct {
	log     *zap.Logger
	clock   clock.Clock
	budgets budgetdomain.Service
	cfg     Config
}

func NewSweeper(p Params) *Sweeper {
	cfg := p.Config.withDefaults()
	return &Sweeper{
		log:     p.Log.Named("trash.sweeper"),
		clock:   p.Clock,
		budgets: p.Budgets,
		cfg:     cfg,
	}
}

func (s *Sweeper) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(); err != nil {
			s.log.Warn("trash sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) RunOnce() error {
	if s.budgets == nil {
		return errors.New("trash_sweeper_unavailable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := s.clock.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	purged, err := s.budgets.PurgeExpired(ctx, cutoff)
	if err != nil {
		return err
	}
	if purged > 0 {
		s.log.Info("trash sweep purged budgets",
			zap.Int64("count", purged),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}
