// internal/scoring/recommendation_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name            string
		scores          [4]int
		expectedTotal   int
		expectedBracket string
	}{
		{"maximum", [4]int{5, 10, 5, 5}, 25, BracketHighNeed},
		{"exactly 20", [4]int{5, 8, 4, 3}, 20, BracketHighNeed},
		{"just under 20", [4]int{5, 8, 3, 3}, 19, BracketModerateNeed},
		{"exactly 15", [4]int{5, 5, 3, 2}, 15, BracketModerateNeed},
		{"just under 15", [4]int{5, 5, 2, 2}, 14, BracketBorderline},
		{"exactly 5", [4]int{2, 2, 0, 1}, 5, BracketBorderline},
		{"just under 5", [4]int{1, 2, 0, 1}, 4, BracketLowIndicators},
		{"zero", [4]int{0, 0, 0, 0}, 0, BracketLowIndicators},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.scores[0], tt.scores[1], tt.scores[2], tt.scores[3])

			assert.Equal(t, tt.expectedTotal, rec.AutoScore)
			assert.Equal(t, tt.expectedTotal, rec.LowEstimate)
			assert.Equal(t, tt.expectedTotal+5, rec.MidEstimate)
			assert.Equal(t, tt.expectedTotal+10, rec.HighEstimate)
			assert.Equal(t, tt.expectedBracket, rec.Bracket)
			assert.NotEmpty(t, rec.Guidance)
		})
	}
}

func TestRecommend_MaximumEstimates(t *testing.T) {
	rec := Recommend(CompletenessMax, FinancialMax, CrisisMax, AlternativesMax)

	assert.Equal(t, AutoScoreMax, rec.AutoScore)
	assert.Equal(t, 25, rec.LowEstimate)
	assert.Equal(t, 30, rec.MidEstimate)
	assert.Equal(t, 35, rec.HighEstimate)
}

func TestRecommend_EveryBracketHasGuidance(t *testing.T) {
	for _, b := range []string{BracketHighNeed, BracketModerateNeed, BracketBorderline, BracketLowIndicators} {
		assert.NotEmpty(t, bracketGuidance[b], b)
	}
}
