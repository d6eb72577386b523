// internal/workers/application/send-notification/config.go
package sendnotification

import (
	"time"

	"benevolence-intake/internal/common/config"
	"benevolence-intake/internal/models"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SenderID     string
	// SMSPriority is the only priority that pages the reviewer by SMS.
	SMSPriority string
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SMSPriority: models.PriorityHigh,
		Timeout:     30 * time.Second,
	}
}

func ConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()
	c.EmailEnabled = cfg.Notifications.Email.Enabled
	c.FromEmail = cfg.Notifications.Email.FromEmail
	c.SMSEnabled = cfg.Notifications.SMS.Enabled
	c.SenderID = cfg.Notifications.SMS.SenderID
	if p := cfg.Notifications.SMS.PriorityThreshold; p != "" {
		c.SMSPriority = p
	}
	return c
}
