// internal/workers/application/send-notification/template.go
package sendnotification

import (
	"fmt"
	"strings"
	"text/template"

	"benevolence-intake/internal/scoring"
)

var reviewerEmail = template.Must(template.New("reviewer").Parse(`A new benevolence application is ready for review.

Application:  {{.ApplicationID}}
Applicant:    {{.Applicant}}
Priority:     {{.Priority}}

Automatic scores
  Completeness:    {{.Completeness.Score}}/{{.CompletenessMax}}  {{.Completeness.Detail}}
  Financial need:  {{.Financial.Score}}/{{.FinancialMax}}  {{.Financial.Detail}}
  Crisis:          {{.Crisis.Score}}/{{.CrisisMax}}  {{.Crisis.Detail}}
  Alternatives:    {{.Alternatives.Score}}/{{.AlternativesMax}}  {{.Alternatives.Detail}}
  Auto score:      {{.Recommendation.AutoScore}}/{{.AutoScoreMax}}

Recommendation: {{.Recommendation.Bracket}}
Estimated final score: {{.Recommendation.LowEstimate}} / {{.Recommendation.MidEstimate}} / {{.Recommendation.HighEstimate}} (low / mid / high)
{{.Recommendation.Guidance}}

Urgency:   {{.Crisis.UrgencyLabel}}
Documents: {{.DocumentCount}}

These scores are a starting point. Interview and document review complete the assessment.
`))

type emailView struct {
	*Input
	Applicant       string
	DocumentCount   int
	CompletenessMax int
	FinancialMax    int
	CrisisMax       int
	AlternativesMax int
	AutoScoreMax    int
}

// RenderEmail returns the subject and plain-text body of the reviewer email.
func RenderEmail(input *Input) (string, string, error) {
	applicant := scoring.FromSubmission(input.Fields, nil).FullName()
	if applicant == "" {
		applicant = "(name not provided)"
	}

	subject := fmt.Sprintf("[%s] Benevolence application %s: %s (%d/%d)",
		strings.ToUpper(input.Priority), input.ApplicationID,
		input.Recommendation.Bracket, input.Recommendation.AutoScore, scoring.AutoScoreMax)

	var body strings.Builder
	err := reviewerEmail.Execute(&body, emailView{
		Input:           input,
		Applicant:       applicant,
		DocumentCount:   len(input.Documents),
		CompletenessMax: scoring.CompletenessMax,
		FinancialMax:    scoring.FinancialMax,
		CrisisMax:       scoring.CrisisMax,
		AlternativesMax: scoring.AlternativesMax,
		AutoScoreMax:    scoring.AutoScoreMax,
	})
	if err != nil {
		return "", "", fmt.Errorf("render reviewer email: %w", err)
	}
	return subject, body.String(), nil
}

// RenderSMS is the short page sent for urgent applications.
func RenderSMS(input *Input) string {
	return fmt.Sprintf("Urgent benevolence application %s: %s, auto score %d/%d, %s. Details sent by email.",
		input.ApplicationID, input.Recommendation.Bracket,
		input.Recommendation.AutoScore, scoring.AutoScoreMax, input.Crisis.UrgencyLabel)
}
