// internal/scoring/alternatives.go
package scoring

const AlternativesMax = 5

// AlternativesResult is the 0-5 score for seeking help elsewhere.
type AlternativesResult struct {
	Score                 int    `json:"score"`
	Detail                string `json:"detail"`
	SoughtOtherAssistance bool   `json:"soughtOtherAssistance"`
	ExplanationLength     int    `json:"explanationLength"`
}

// ScoreAlternatives rewards applicants who have looked for help elsewhere
// and explained where.
func ScoreAlternatives(app Application) AlternativesResult {
	if !app.OtherAssistance.Yes() {
		if app.OngoingServices.Yes() && app.OngoingServicesDetails.Provided() {
			return AlternativesResult{
				Score:  2,
				Detail: "Has not sought other assistance; receiving ongoing services",
			}
		}
		return AlternativesResult{
			Score:  1,
			Detail: "Has not sought other assistance",
		}
	}

	length := app.OtherAssistanceDetails.Length()
	result := AlternativesResult{SoughtOtherAssistance: true, ExplanationLength: length}
	switch {
	case length > 50:
		result.Score, result.Detail = 5, "Sought other assistance with a detailed explanation"
	case length > 15:
		result.Score, result.Detail = 4, "Sought other assistance with a brief explanation"
	case length > 0:
		result.Score, result.Detail = 3, "Sought other assistance with minimal explanation"
	default:
		result.Score, result.Detail = 2, "Sought other assistance without explanation"
	}
	return result
}
