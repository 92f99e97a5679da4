package trash

import (
	"time"

	appconfig "github.com/kukypng/oliver/internal/config"
)

// Config controls the trash retention sweeper loop.
type Config struct {
	RetentionDays int
	SweepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		RetentionDays: 90,
		SweepInterval: time.Hour,
	}
}

// FromAppConfig maps the application configuration onto the sweeper config.
func FromAppConfig(cfg appconfig.Config) Config {
	return Config{
		RetentionDays: cfg.Trash.RetentionDays,
		SweepInterval: cfg.Trash.SweepInterval,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RetentionDays <= 0 {
		c.RetentionDays = defaults.RetentionDays
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = defaults.SweepInterval
	}
	return c
}
