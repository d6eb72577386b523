// internal/scoring/recommendation.go
package scoring

const (
	// AutoScoreMax is the sum of the four automatic category maximums.
	AutoScoreMax = CompletenessMax + FinancialMax + CrisisMax + AlternativesMax

	// Categories 5 and 6 are scored by a reviewer after the interview.
	midReviewerEstimate  = 5
	highReviewerEstimate = 10
)

// Recommendation brackets.
const (
	BracketHighNeed      = "High Need"
	BracketModerateNeed  = "Moderate Need"
	BracketBorderline    = "Borderline"
	BracketLowIndicators = "Low Indicators"
)

var bracketGuidance = map[string]string{
	BracketHighNeed:      "Strong indicators of need. Prioritize for committee review and verify documents promptly.",
	BracketModerateNeed:  "Meaningful need indicated. Complete the interview and document review before deciding.",
	BracketBorderline:    "Mixed indicators. The interview categories will likely decide the outcome.",
	BracketLowIndicators: "Few indicators of need in the submitted answers. Confirm details with the applicant before declining.",
}

// Recommendation is the auto score with its bracket and projected final range.
type Recommendation struct {
	AutoScore    int    `json:"autoScore"`
	LowEstimate  int    `json:"lowEstimate"`
	MidEstimate  int    `json:"midEstimate"`
	HighEstimate int    `json:"highEstimate"`
	Bracket      string `json:"bracket"`
	Guidance     string `json:"guidance"`
}

// Recommend sums the automatic sub-scores and projects the full-scale range
// once the reviewer categories are added.
func Recommend(completeness, financial, crisis, alternatives int) Recommendation {
	total := completeness + financial + crisis + alternatives
	rec := Recommendation{
		AutoScore:    total,
		LowEstimate:  total,
		MidEstimate:  total + midReviewerEstimate,
		HighEstimate: total + highReviewerEstimate,
	}

	switch {
	case rec.LowEstimate >= 20:
		rec.Bracket = BracketHighNeed
	case rec.MidEstimate >= 20 && rec.MidEstimate < 30:
		rec.Bracket = BracketModerateNeed
	case rec.MidEstimate >= 10:
		rec.Bracket = BracketBorderline
	default:
		rec.Bracket = BracketLowIndicators
	}
	rec.Guidance = bracketGuidance[rec.Bracket]
	return rec
}
