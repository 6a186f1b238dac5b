package validate

import (
	"fmt"
	"time"

	"github.com/loandesk/docsort/internal/model"
)

// DefaultMaxDocumentAgeDays is the recency window applied when no override
// is configured.
const DefaultMaxDocumentAgeDays = 90

// Recency checks whether a canonical document date ("YYYY" or "YYYY_MM")
// falls within maxAllowedDays of now. A bare year parses as January 1 and a
// year-month as the first of that month. Missing or unparsable dates are
// reported as a failed validation with a reason, never as an error.
func Recency(canonicalDate string, now time.Time, maxAllowedDays int) model.DateValidation {
	if maxAllowedDays <= 0 {
		maxAllowedDays = DefaultMaxDocumentAgeDays
	}
	result := model.DateValidation{
		DocumentDate:   canonicalDate,
		MaxAllowedDays: maxAllowedDays,
	}

	if canonicalDate == "" {
		result.Reason = "No date found"
		return result
	}

	parsed, err := parseCanonical(canonicalDate)
	if err != nil {
		result.Reason = err.Error()
		return result
	}

	daysOld := int(now.Sub(parsed).Hours() / 24)
	result.DaysOld = &daysOld
	result.IsValid = !parsed.Before(now.AddDate(0, 0, -maxAllowedDays))
	return result
}

func parseCanonical(date string) (time.Time, error) {
	if t, err := time.Parse("2006_01", date); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006", date); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", date)
}
