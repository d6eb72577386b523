// internal/workers/application/index-application/models.go
package indexapplication

import (
	"time"

	"benevolence-intake/internal/scoring"
)

type Input struct {
	ApplicationID string            `json:"applicationId"`
	Fields        map[string]string `json:"fields"`
	scoring.Assessment
	Priority  string `json:"priority"`
	CreatedAt string `json:"createdAt"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	Index         string `json:"index"`
	Result        string `json:"indexResult"`
}

// SearchDocument is what reviewers search and sort the queue by. It carries
// no free-text answers and no document content.
type SearchDocument struct {
	ApplicationID   string   `json:"applicationId"`
	ApplicantName   string   `json:"applicantName"`
	City            string   `json:"city,omitempty"`
	State           string   `json:"state,omitempty"`
	AutoScore       int      `json:"autoScore"`
	Completeness    int      `json:"completeness"`
	Financial       int      `json:"financial"`
	Crisis          int      `json:"crisis"`
	Alternatives    int      `json:"alternatives"`
	Bracket         string   `json:"bracket"`
	Priority        string   `json:"priority"`
	Needs           []string `json:"needs"`
	Urgency         string   `json:"urgency"`
	Deadline        string   `json:"deadline,omitempty"`
	AmountRequested float64  `json:"amountRequested"`
	CreatedAt       string   `json:"createdAt"`
}

// NewSearchDocument flattens the indexed view of one application.
func NewSearchDocument(input *Input) SearchDocument {
	app := scoring.FromSubmission(input.Fields, nil)

	needs := input.Crisis.SelectedNeeds
	if needs == nil {
		needs = []string{}
	}

	deadline := app.DeadlineDate.Text()
	if d, ok := app.DeadlineDate.Date(time.UTC); ok {
		deadline = d.Format("2006-01-02")
	}

	return SearchDocument{
		ApplicationID:   input.ApplicationID,
		ApplicantName:   app.FullName(),
		City:            app.City.Text(),
		State:           app.State.Text(),
		AutoScore:       input.Recommendation.AutoScore,
		Completeness:    input.Completeness.Score,
		Financial:       input.Financial.Score,
		Crisis:          input.Crisis.Score,
		Alternatives:    input.Alternatives.Score,
		Bracket:         input.Recommendation.Bracket,
		Priority:        input.Priority,
		Needs:           needs,
		Urgency:         input.Crisis.UrgencyLabel,
		Deadline:        deadline,
		AmountRequested: app.AmountRequested.Amount(),
		CreatedAt:       input.CreatedAt,
	}
}
