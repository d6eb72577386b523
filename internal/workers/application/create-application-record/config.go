// internal/workers/application/create-application-record/config.go
package createapplicationrecord

import (
	"time"

	"benevolence-intake/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// DuplicateWindow is how far back an identical fingerprint counts as a
	// resubmission. Zero disables the check.
	DuplicateWindow time.Duration
	Now             func() time.Time
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		DuplicateWindow: 72 * time.Hour,
		Now:             time.Now,
	}
}

func ConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()
	c.DuplicateWindow = cfg.Intake.DuplicateWindow()
	if cfg.Intake.StepTimeout > 0 {
		c.Timeout = time.Duration(cfg.Intake.StepTimeout) * time.Millisecond
	}
	return c
}
