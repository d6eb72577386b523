// internal/workers/application/create-application-record/models.go
package createapplicationrecord

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"benevolence-intake/internal/models"
	"benevolence-intake/internal/scoring"
)

type Input struct {
	ApplicationID string            `json:"applicationId,omitempty"`
	Fields        map[string]string `json:"fields"`
	Documents     []models.Document `json:"documents"`
	scoring.Assessment
	Priority string `json:"priority"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	CreatedAt         string `json:"createdAt"` // ISO 8601
	Fingerprint       string `json:"fingerprint"`
	DocumentCount     int    `json:"documentCount"`
}

// ApplicantFrom reads the identity fields of a submission.
func ApplicantFrom(fields map[string]string) models.Applicant {
	get := func(k string) string { return strings.TrimSpace(fields[k]) }
	return models.Applicant{
		FirstName: get(scoring.FieldFirstName),
		LastName:  get(scoring.FieldLastName),
		Email:     get(scoring.FieldEmail),
		Phone:     get(scoring.FieldPhone),
		City:      get(scoring.FieldCity),
		State:     get(scoring.FieldState),
	}
}

// Fingerprint identifies a resubmission of the same request: same email,
// same amount, same deadline.
func Fingerprint(fields map[string]string) string {
	email := strings.ToLower(strings.TrimSpace(fields[scoring.FieldEmail]))
	amount := fmt.Sprintf("%.2f", scoring.Answer(fields[scoring.FieldAmountRequested]).Amount())

	deadline := strings.TrimSpace(fields[scoring.FieldDeadlineDate])
	if d, ok := scoring.Answer(deadline).Date(time.UTC); ok {
		deadline = d.Format("2006-01-02")
	}

	sum := sha256.Sum256([]byte(email + "|" + amount + "|" + deadline))
	return hex.EncodeToString(sum[:])
}
