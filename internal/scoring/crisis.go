// internal/scoring/crisis.go
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	CrisisMax = 5

	severityWeight = 0.6
)

// Urgency labels reported with the crisis score.
const (
	UrgencyNoDeadline = "No deadline provided"
	UrgencyPastDue    = "Past due"
	UrgencyCritical   = "Critical (3 days or less)"
	UrgencyUrgent     = "Urgent (within a week)"
	UrgencyStandard   = "Standard (more than a week)"
)

// CrisisResult is the 0-5 severity score plus the deadline urgency behind it.
type CrisisResult struct {
	Score             int      `json:"score"`
	Detail            string   `json:"detail"`
	MaxSeverity       int      `json:"maxSeverity"`
	SelectedNeeds     []string `json:"selectedNeeds"`
	DaysUntilDeadline *int     `json:"daysUntilDeadline,omitempty"`
	UrgencyLabel      string   `json:"urgencyLabel"`
	UrgencyBonus      int      `json:"urgencyBonus"`
}

// AssistanceType pairs an assistance checkbox with its fixed severity.
type AssistanceType struct {
	Field    string
	Label    string
	Severity int
	answer   func(Needs) Answer
}

// AssistanceTypes lists every assistance checkbox, most severe first.
var AssistanceTypes = []AssistanceType{
	{FieldNeedEviction, "Eviction", 5, func(n Needs) Answer { return n.Eviction }},
	{FieldNeedUtilityShutoff, "Utility shutoff", 5, func(n Needs) Answer { return n.UtilityShutoff }},
	{FieldNeedRent, "Rent", 4, func(n Needs) Answer { return n.Rent }},
	{FieldNeedMedical, "Medical", 4, func(n Needs) Answer { return n.Medical }},
	{FieldNeedFood, "Food", 4, func(n Needs) Answer { return n.Food }},
	{FieldNeedTransportation, "Transportation", 3, func(n Needs) Answer { return n.Transportation }},
	{FieldNeedOther, "Other", 3, func(n Needs) Answer { return n.Other }},
}

// ScoreCrisis takes the most severe selected assistance type and adds an
// urgency bonus based on how close the stated deadline is to now.
func ScoreCrisis(app Application, now time.Time) CrisisResult {
	result := CrisisResult{SelectedNeeds: []string{}}

	for _, t := range AssistanceTypes {
		if t.answer(app.Needs).Yes() {
			result.SelectedNeeds = append(result.SelectedNeeds, t.Label)
			result.MaxSeverity = max(result.MaxSeverity, t.Severity)
		}
	}

	result.UrgencyLabel = UrgencyNoDeadline
	if days, ok := daysUntil(app.DeadlineDate, now); ok {
		result.DaysUntilDeadline = &days
		result.UrgencyLabel, result.UrgencyBonus = urgency(days)
	}

	if len(result.SelectedNeeds) == 0 {
		result.Score = 0
		result.Detail = fmt.Sprintf("No assistance type selected; %s", result.UrgencyLabel)
		return result
	}

	base := int(math.Round(float64(result.MaxSeverity) * severityWeight))
	result.Score = min(CrisisMax, base+result.UrgencyBonus)
	result.Detail = fmt.Sprintf("Needs: %s (max severity %d); %s",
		strings.Join(result.SelectedNeeds, ", "), result.MaxSeverity, result.UrgencyLabel)
	return result
}

func urgency(days int) (string, int) {
	switch {
	case days < 0:
		return UrgencyPastDue, 2
	case days <= 3:
		return UrgencyCritical, 2
	case days <= 7:
		return UrgencyUrgent, 1
	default:
		return UrgencyStandard, 0
	}
}

// daysUntil counts calendar days from now's date to the deadline, in now's location.
func daysUntil(deadline Answer, now time.Time) (int, bool) {
	due, ok := deadline.Date(now.Location())
	if !ok {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(due.Sub(today).Hours() / 24)), true
}
