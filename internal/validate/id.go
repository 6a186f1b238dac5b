// Package validate implements category-conditional document checks: ID
// plausibility for identity documents and date recency for income and
// down-payment documents.
package validate

import (
	"regexp"
	"strings"

	"github.com/loandesk/docsort/internal/model"
)

// ID indicator terms in priority order; the first one present in the text
// becomes the reported IDType.
var idIndicators = []string{
	"passport",
	"driver",
	"license",
	"identification",
	"birth certificate",
	"sin",
	"social insurance",
}

var expiryHints = []string{"expiry", "expires", "expiration", "valid until"}

var (
	longDigitRun = regexp.MustCompile(`[0-9]{4,}`)
	yearToken    = regexp.MustCompile(`\b(19|20)[0-9]{2}\b`)
)

// ID scans the text for identity-document signals. A document is considered
// a plausible ID when an indicator term is present together with either a
// 4+-digit number or a year-like token. Confidence is 0.8 when an indicator
// was found and 0.3 otherwise; it is a heuristic score, not a probability.
func ID(text string) model.IDValidation {
	lower := strings.ToLower(text)

	idType := "unknown"
	found := false
	for _, indicator := range idIndicators {
		if strings.Contains(lower, indicator) {
			idType = indicator
			found = true
			break
		}
	}

	hasNumber := longDigitRun.MatchString(lower) || yearToken.MatchString(lower)

	hasExpiry := false
	for _, hint := range expiryHints {
		if strings.Contains(lower, hint) {
			hasExpiry = true
			break
		}
	}

	confidence := 0.3
	if found {
		confidence = 0.8
	}

	return model.IDValidation{
		IDType:        idType,
		IsValidID:     found && hasNumber,
		HasExpiryHint: hasExpiry,
		Confidence:    confidence,
	}
}
