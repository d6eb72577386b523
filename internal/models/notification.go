// internal/models/notification.go
package models

import "time"

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"

	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
)

type Notification struct {
	ID          string    `json:"id"`
	Recipient   string    `json:"recipient"`
	Channel     string    `json:"channel"`
	Status      string    `json:"status"`
	Subject     string    `json:"subject,omitempty"`
	Body        string    `json:"body,omitempty"`
	SentAt      time.Time `json:"sentAt"`
	FailureText string    `json:"failureText,omitempty"`
}

// Reviewer is the contact for one review queue.
type Reviewer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Queue string `json:"queue"`
}
