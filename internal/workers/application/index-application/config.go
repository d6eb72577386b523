// internal/workers/application/index-application/config.go
package indexapplication

import (
	"time"

	"benevolence-intake/internal/common/config"
)

const DefaultIndex = "benevolence-applications"

type Config struct {
	Index   string
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:   DefaultIndex,
		Timeout: 10 * time.Second,
	}
}

func ConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()
	if cfg.Database.Elasticsearch.Index != "" {
		c.Index = cfg.Database.Elasticsearch.Index
	}
	if cfg.Intake.StepTimeout > 0 {
		c.Timeout = time.Duration(cfg.Intake.StepTimeout) * time.Millisecond
	}
	return c
}
