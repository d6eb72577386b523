// Package scoring computes the automatic eligibility pre-score for a
// benevolence application. Every function here is pure: no I/O, no shared
// state, and no error paths.
package scoring

import "time"

// Assessment is the full automatic evaluation of one application.
type Assessment struct {
	Completeness   CompletenessResult `json:"completeness"`
	Financial      FinancialResult    `json:"financial"`
	Crisis         CrisisResult       `json:"crisis"`
	Alternatives   AlternativesResult `json:"alternatives"`
	Recommendation Recommendation     `json:"recommendation"`
	EvaluatedAt    time.Time          `json:"evaluatedAt"`
}

// Evaluate scores app as of now.
func Evaluate(app Application, now time.Time) Assessment {
	a := Assessment{
		Completeness: ScoreCompleteness(app),
		Financial:    ScoreFinancialNeed(app),
		Crisis:       ScoreCrisis(app, now),
		Alternatives: ScoreAlternatives(app),
		EvaluatedAt:  now,
	}
	a.Recommendation = Recommend(a.Completeness.Score, a.Financial.Score, a.Crisis.Score, a.Alternatives.Score)
	return a
}

// EvaluateSubmission is Evaluate for raw form values.
func EvaluateSubmission(fields map[string]string, files []UploadedFile, now time.Time) Assessment {
	return Evaluate(FromSubmission(fields, files), now)
}
