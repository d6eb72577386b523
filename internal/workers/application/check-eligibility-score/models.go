// internal/workers/application/check-eligibility-score/models.go
package checkeligibilityscore

import (
	"time"

	"benevolence-intake/internal/models"
	"benevolence-intake/internal/scoring"
)

type Input struct {
	ApplicationID string            `json:"applicationId"`
	Fields        map[string]string `json:"fields"`
	Documents     []models.Document `json:"documents"`
	EvaluatedAt   *time.Time        `json:"evaluatedAt,omitempty"`
}

// Output flattens the assessment so process variables like bracket and
// urgencyBonus are addressable from the BPMN model.
type Output struct {
	ApplicationID string `json:"applicationId,omitempty"`
	scoring.Assessment
	AutoScore    int    `json:"autoScore"`
	Bracket      string `json:"bracket"`
	CrisisScore  int    `json:"crisisScore"`
	UrgencyBonus int    `json:"urgencyBonus"`
}
