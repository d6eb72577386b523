// internal/workers/application/check-priority-routing/models.go
package checkpriorityrouting

import "benevolence-intake/internal/models"

type Input struct {
	ApplicationID string `json:"applicationId"`
	Bracket       string `json:"bracket"`
	UrgencyBonus  int    `json:"urgencyBonus"`
	CrisisScore   int    `json:"crisisScore"`
}

type Output struct {
	ApplicationID  string          `json:"applicationId,omitempty"`
	Priority       string          `json:"priority"`
	Reviewer       models.Reviewer `json:"reviewer"`
	ReviewerSource string          `json:"reviewerSource"`
}

// Where the reviewer contact came from.
const (
	SourceCache    = "cache"
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

const reviewerCachePrefix = "reviewer:queue:"

func reviewerCacheKey(queue string) string {
	return reviewerCachePrefix + queue
}
