// internal/scoring/answer.go
package scoring

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Answer is a single form value exactly as the applicant submitted it.
// Parsing never fails: malformed numbers read as zero and unknown
// choices read as "no".
type Answer string

var affirmativeValues = map[string]struct{}{
	"yes":     {},
	"y":       {},
	"true":    {},
	"on":      {},
	"1":       {},
	"checked": {},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
}

// Text returns the trimmed value.
func (a Answer) Text() string {
	return strings.TrimSpace(string(a))
}

// Provided reports whether the applicant entered anything other than whitespace.
func (a Answer) Provided() bool {
	return a.Text() != ""
}

// Yes reports whether the value is an affirmative choice or checkbox.
func (a Answer) Yes() bool {
	_, ok := affirmativeValues[strings.ToLower(a.Text())]
	return ok
}

// Amount parses a currency or plain number. "$1,250.50" reads as 1250.5.
func (a Answer) Amount() float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(a.Text())
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Date parses the value as a calendar date in loc.
func (a Answer) Date(loc *time.Location) (time.Time, bool) {
	text := a.Text()
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Length counts characters, not bytes, of the trimmed value.
func (a Answer) Length() int {
	return len([]rune(a.Text()))
}
