// internal/scoring/completeness.go
package scoring

import "fmt"

const (
	CompletenessMax = 5

	fieldWeight = 0.6
	fileWeight  = 0.4
)

// CompletenessResult is the 0-5 score for filled fields and uploaded documents.
type CompletenessResult struct {
	Score          int     `json:"score"`
	Detail         string  `json:"detail"`
	FieldsFilled   int     `json:"fieldsFilled"`
	FieldsRequired int     `json:"fieldsRequired"`
	FilesPresent   int     `json:"filesPresent"`
	FilesRequired  int     `json:"filesRequired"`
	Ratio          float64 `json:"ratio"`
}

var completenessThresholds = []struct {
	min   float64
	score int
}{
	{0.95, 5},
	{0.80, 4},
	{0.65, 3},
	{0.45, 2},
	{0.25, 1},
}

// ScoreCompleteness blends the share of required answers (60%) with the
// share of required documents (40%).
func ScoreCompleteness(app Application) CompletenessResult {
	required := append(append([]string{}, RequiredTextFields...), RequiredChoiceFields...)

	filled := 0
	for _, name := range required {
		if app.Value(name).Provided() {
			filled++
		}
	}

	present := 0
	for _, name := range RequiredDocuments {
		if app.HasDocument(name) {
			present++
		}
	}

	ratio := fieldWeight*float64(filled)/float64(len(required)) +
		fileWeight*float64(present)/float64(len(RequiredDocuments))

	score := 0
	for _, t := range completenessThresholds {
		if ratio >= t.min {
			score = t.score
			break
		}
	}

	return CompletenessResult{
		Score: score,
		Detail: fmt.Sprintf("%d of %d required fields completed, %d of %d required documents uploaded",
			filled, len(required), present, len(RequiredDocuments)),
		FieldsFilled:   filled,
		FieldsRequired: len(required),
		FilesPresent:   present,
		FilesRequired:  len(RequiredDocuments),
		Ratio:          ratio,
	}
}
