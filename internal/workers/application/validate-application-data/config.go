// internal/workers/application/validate-application-data/config.go
package validateapplicationdata

import (
	"time"

	"benevolence-intake/internal/common/config"
)

type Config struct {
	Timeout             time.Duration
	MaxFieldLength      int
	MaxFileSize         int64
	MaxFilesPerField    int
	AllowedContentTypes []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:             10 * time.Second,
		MaxFieldLength:      5000,
		MaxFileSize:         10 << 20,
		MaxFilesPerField:    4,
		AllowedContentTypes: []string{"application/pdf", "image/jpeg", "image/png", "image/heic"},
	}
}

// ConfigFromIntake maps the intake section onto the worker config.
func ConfigFromIntake(cfg config.IntakeConfig) *Config {
	c := LoadConfig()
	if cfg.StepTimeout > 0 {
		c.Timeout = time.Duration(cfg.StepTimeout) * time.Millisecond
	}
	if cfg.MaxFieldLength > 0 {
		c.MaxFieldLength = cfg.MaxFieldLength
	}
	if cfg.MaxFileSize > 0 {
		c.MaxFileSize = cfg.MaxFileSize
	}
	if cfg.MaxFiles > 0 {
		c.MaxFilesPerField = cfg.MaxFiles
	}
	if len(cfg.AllowedContentTypes) > 0 {
		c.AllowedContentTypes = cfg.AllowedContentTypes
	}
	return c
}
