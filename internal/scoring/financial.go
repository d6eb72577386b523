// internal/scoring/financial.go
package scoring

import "fmt"

const (
	FinancialMax = 10

	insufficientDataScore = 5
	severeDeficitDollars  = -1000
)

// FinancialResult is the 0-10 need score from the income/expense gap and savings.
type FinancialResult struct {
	Score           int     `json:"score"`
	Detail          string  `json:"detail"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	TotalExpenses   float64 `json:"totalExpenses"`
	Gap             float64 `json:"gap"`
	GapPercent      float64 `json:"gapPercent"`
	Savings         float64 `json:"savings"`
	AmountRequested float64 `json:"amountRequested"`
}

type financialBand struct {
	matches func(gap, gapPct float64, savingsCover bool) bool
	score   int
	detail  string
}

// Bands are ordered; the first match wins.
var financialBands = []financialBand{
	{
		matches: func(_, pct float64, cover bool) bool { return pct > 20 && cover },
		score:   1,
		detail:  "Income exceeds expenses by more than 20% and savings cover the request",
	},
	{
		matches: func(_, pct float64, _ bool) bool { return pct > 20 },
		score:   2,
		detail:  "Income exceeds expenses by more than 20%",
	},
	{
		matches: func(_, pct float64, _ bool) bool { return pct > 10 },
		score:   3,
		detail:  "Income exceeds expenses by 10-20%",
	},
	{
		matches: func(_, pct float64, _ bool) bool { return pct > 0 },
		score:   4,
		detail:  "Income slightly exceeds expenses",
	},
	{
		matches: func(_, pct float64, _ bool) bool { return pct > -10 },
		score:   5,
		detail:  "Income roughly equals expenses",
	},
	{
		matches: func(_, pct float64, _ bool) bool { return pct > -25 },
		score:   6,
		detail:  "Moderate monthly deficit",
	},
	{
		matches: func(gap, pct float64, _ bool) bool { return pct > -50 && gap > severeDeficitDollars },
		score:   8,
		detail:  "Significant monthly deficit",
	},
	{
		matches: func(_, _ float64, _ bool) bool { return true },
		score:   10,
		detail:  "Severe monthly deficit",
	},
}

// ScoreFinancialNeed compares monthly income against the seven expense
// categories and adjusts for savings on hand.
func ScoreFinancialNeed(app Application) FinancialResult {
	income := app.TotalMonthlyIncome.Amount()
	if income <= 0 {
		income = app.MonthlyNetIncome.Amount()
	}
	if income < 0 {
		income = 0
	}
	expenses := app.Expenses.Total()
	savings := app.SavingsAmount.Amount()
	requested := app.AmountRequested.Amount()

	result := FinancialResult{
		MonthlyIncome:   income,
		TotalExpenses:   expenses,
		Savings:         savings,
		AmountRequested: requested,
	}

	if income == 0 && expenses == 0 {
		result.Score = insufficientDataScore
		result.Detail = "Insufficient financial data"
		return result
	}

	gap := income - expenses
	result.Gap = gap
	result.GapPercent = gapPercent(gap, expenses)

	savingsCover := requested > 0 && savings >= requested

	score := 0
	detail := ""
	for _, band := range financialBands {
		if band.matches(gap, result.GapPercent, savingsCover) {
			score, detail = band.score, band.detail
			break
		}
	}

	if savings <= 0 && score >= 5 {
		score = min(score+1, FinancialMax)
		detail += "; no savings reported"
	}
	if savingsCover && score >= 5 {
		score = max(score-2, 3)
		detail += "; savings cover the requested amount"
	}

	result.Score = clamp(score, 0, FinancialMax)
	result.Detail = fmt.Sprintf("%s (income $%.2f, expenses $%.2f, gap %.1f%%)",
		detail, income, expenses, result.GapPercent)
	return result
}

func gapPercent(gap, expenses float64) float64 {
	if expenses > 0 {
		return gap * 100 / expenses
	}
	switch {
	case gap > 0:
		return 100
	case gap < 0:
		return -100
	}
	return 0
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
