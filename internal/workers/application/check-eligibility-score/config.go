// internal/workers/application/check-eligibility-score/config.go
package checkeligibilityscore

import (
	"time"

	"benevolence-intake/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// Location decides which calendar day "today" is for deadline urgency.
	Location *time.Location
	Now      func() time.Time
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		Location: time.UTC,
		Now:      time.Now,
	}
}

func ConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()
	c.Location = cfg.Scoring.Location()
	if cfg.Intake.StepTimeout > 0 {
		c.Timeout = time.Duration(cfg.Intake.StepTimeout) * time.Millisecond
	}
	return c
}
