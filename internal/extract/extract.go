// Package extract derives structured metadata (client name, date, amount,
// account number) from raw document text.
//
// Each extractor evaluates an ordered list of candidate patterns of
// decreasing specificity. The first pattern class that matches anywhere in
// the text wins, and within that class the last occurrence in the text is
// used: documents repeat headers, and the final occurrence is typically the
// most specific one. Account numbers are the exception and take the first
// occurrence.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loandesk/docsort/internal/model"
)

// Defaults reported when an extractor resolves nothing.
const (
	DefaultName          = "Client"
	DefaultAmount        = "$0"
	DefaultAccountSuffix = "#000"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Client|Prepared for)[:\s]+([A-Z][a-z]+(?: [A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?:Name|Employee)[:\s]+([A-Z][a-z]+(?: [A-Z][a-z]+)?)`),
	regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+)\s+(?:Statement|Report|Summary)`),
}

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:(?:Total|Final|Current)\s+)?(?:Balance|Amount)[:\s]*\$?\s?([0-9][0-9,]*(?:\.[0-9]{2})?)`),
	regexp.MustCompile(`(?i)Balance[^0-9$]{0,40}\$?([0-9][0-9,]*(?:\.[0-9]{2})?)`),
	regexp.MustCompile(`\$\s?([0-9][0-9,]*(?:\.[0-9]{2})?)`),
}

var accountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Account\s+Number|Acc\s*#|Account)[^0-9]*([0-9]{3,})`),
	regexp.MustCompile(`#\s?([0-9]{3,})`),
	regexp.MustCompile(`([0-9]{4,})`),
}

// Date patterns in decreasing specificity. All of them are scanned in a
// single pass: the match ending last in the text wins, and when two
// patterns end at the same offset the more specific one is kept. That
// preserves the observable "last date in the document wins" behavior while
// still preferring a full date over the bare year it contains.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(20[0-9]{2})-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])`),
	regexp.MustCompile(`(20[0-9]{2})[-/](0?[1-9]|1[0-2])\b`),
	regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+([0-9]{1,2}),?\s+(20[0-9]{2})`),
	regexp.MustCompile(`\b(20[0-9]{2})\b`),
}

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Name extracts the client name from document text, defaulting to "Client".
func Name(text string) string {
	for _, re := range namePatterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) > 0 {
			return matches[len(matches)-1][1]
		}
	}
	return DefaultName
}

// Date extracts the canonical document date ("YYYY" or "YYYY_MM", month
// zero-padded). It returns the empty string when no recognizable date
// exists.
func Date(text string) string {
	bestEnd := -1
	bestPattern := len(datePatterns)
	var best []string

	for pi, re := range datePatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			end := loc[1]
			if end > bestEnd || (end == bestEnd && pi < bestPattern) {
				groups := make([]string, 0, len(loc)/2)
				for g := 0; g < len(loc); g += 2 {
					if loc[g] < 0 {
						groups = append(groups, "")
						continue
					}
					groups = append(groups, text[loc[g]:loc[g+1]])
				}
				bestEnd = end
				bestPattern = pi
				best = groups
			}
		}
	}

	if best == nil {
		return ""
	}
	switch bestPattern {
	case 0, 1: // YYYY-MM-DD or YYYY-MM
		return best[1] + "_" + zeroPad(best[2])
	case 2: // month name, day, year
		return best[3] + "_" + monthNumbers[strings.ToLower(best[1][:3])]
	default: // bare year
		return best[1]
	}
}

// Amount extracts the monetary amount in display form: "$<n>" for values
// under 1000, "$<floor(n/1000)>K" otherwise, "$0" when absent or
// unparsable.
func Amount(text string) string {
	for _, re := range amountPatterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		raw := strings.ReplaceAll(matches[len(matches)-1][1], ",", "")
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return DefaultAmount
		}
		if value.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
			return fmt.Sprintf("$%dK", value.IntPart()/1000)
		}
		return fmt.Sprintf("$%d", value.IntPart())
	}
	return DefaultAmount
}

// AccountNumber extracts "#" plus the last 3 digits of the first account
// number found, or "#000" when none is present.
func AccountNumber(text string) string {
	for _, re := range accountPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			digits := m[1]
			return "#" + digits[len(digits)-3:]
		}
	}
	return DefaultAccountSuffix
}

// Metadata runs all four extractors over the text.
func Metadata(text string) model.ExtractedMetadata {
	return model.ExtractedMetadata{
		ClientName:    Name(text),
		DocumentDate:  Date(text),
		Amount:        Amount(text),
		AccountSuffix: AccountNumber(text),
	}
}

func zeroPad(month string) string {
	if len(month) == 1 {
		return "0" + month
	}
	return month
}
