// internal/workers/application/check-priority-routing/config.go
package checkpriorityrouting

import (
	"time"

	"benevolence-intake/internal/common/config"
)

type Config struct {
	CacheTTL      time.Duration
	Timeout       time.Duration
	FallbackEmail string
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: 15 * time.Minute,
		Timeout:  10 * time.Second,
	}
}

func ConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()
	if cfg.Notifications.ReviewerCacheTTL > 0 {
		c.CacheTTL = time.Duration(cfg.Notifications.ReviewerCacheTTL) * time.Second
	}
	if cfg.Intake.StepTimeout > 0 {
		c.Timeout = time.Duration(cfg.Intake.StepTimeout) * time.Millisecond
	}
	c.FallbackEmail = cfg.Notifications.Email.ReviewerFallbackEmail
	return c
}
