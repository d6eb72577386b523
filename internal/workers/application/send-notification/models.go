// internal/workers/application/send-notification/models.go
package sendnotification

import (
	"benevolence-intake/internal/models"
	"benevolence-intake/internal/scoring"
)

type Input struct {
	ApplicationID string            `json:"applicationId"`
	Fields        map[string]string `json:"fields"`
	Documents     []models.Document `json:"documents,omitempty"`
	scoring.Assessment
	Priority string          `json:"priority"`
	Reviewer models.Reviewer `json:"reviewer"`
}

type Output struct {
	NotificationID string                `json:"notificationId"`
	Status         string                `json:"status"` // "sent", "failed", "disabled"
	SentAt         string                `json:"sentAt"` // ISO 8601
	Deliveries     []models.Notification `json:"deliveries"`
}

// Statuses
const (
	StatusSent     = models.NotificationSent
	StatusFailed   = models.NotificationFailed
	StatusDisabled = models.NotificationDisabled
)
