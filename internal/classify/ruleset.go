// Package classify implements the hybrid subcategory classifier: an ordered
// keyword rule tier, an optional trained-model fallback tier, and a default
// tier returning Unknown.
package classify

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/loandesk/docsort/internal/model"
)

// KeywordRule binds one subcategory to the keywords that trigger it.
// Rule order across the ruleset is the tie-break: the first rule with any
// matching keyword wins.
type KeywordRule struct {
	Subcategory string
	Keywords    []string
}

// Ruleset is the immutable classification configuration: ordered keyword
// rules plus the subcategory-to-category mapping. It is constructed once at
// startup and injected into the classifier; nothing mutates it afterward.
type Ruleset struct {
	Rules      []KeywordRule
	Categories map[string]string
}

// CategoryFor resolves a subcategory to its category, defaulting to Other
// for subcategories absent from the mapping.
func (rs Ruleset) CategoryFor(subcategory string) string {
	if cat, ok := rs.Categories[subcategory]; ok && cat != "" {
		return cat
	}
	return model.CategoryOther
}

// Subcategories returns the rule subcategory names in tie-break order.
func (rs Ruleset) Subcategories() []string {
	names := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		names[i] = r.Subcategory
	}
	return names
}

// DefaultRuleset returns the embedded fallback configuration. It is never
// empty: classification must stay total even when no external configuration
// can be read.
func DefaultRuleset() Ruleset {
	rules := []KeywordRule{
		{Subcategory: "Paystub", Keywords: []string{"paystub", "pay stub", "payroll", "earnings statement"}},
		{Subcategory: "Employment Letter", Keywords: []string{"employment letter", "letter of employment", "verification of employment"}},
		{Subcategory: "T4", Keywords: []string{"t4", "statement of remuneration"}},
		{Subcategory: "Notice of Assessment", Keywords: []string{"notice of assessment", "noa"}},
		{Subcategory: "RBC Chequing", Keywords: []string{"rbc chequing", "rbc personal banking"}},
		{Subcategory: "TD Chequing", Keywords: []string{"td chequing", "td every day"}},
		{Subcategory: "Savings Statement", Keywords: []string{"savings statement", "savings account"}},
		{Subcategory: "Investment Statement", Keywords: []string{"investment statement", "tfsa", "rrsp"}},
		{Subcategory: "Gift Letter", Keywords: []string{"gift letter", "gifted funds"}},
		{Subcategory: "Passport", Keywords: []string{"passport"}},
		{Subcategory: "Driver License", Keywords: []string{"driver's licence", "driver licence", "driver license"}},
		{Subcategory: "Birth Certificate", Keywords: []string{"birth certificate"}},
	}
	categories := map[string]string{
		"Paystub":              model.CategoryIncome,
		"Employment Letter":    model.CategoryIncome,
		"T4":                   model.CategoryIncome,
		"Notice of Assessment": model.CategoryIncome,
		"RBC Chequing":         model.CategoryDownPayment,
		"TD Chequing":          model.CategoryDownPayment,
		"Savings Statement":    model.CategoryDownPayment,
		"Investment Statement": model.CategoryDownPayment,
		"Gift Letter":          model.CategoryDownPayment,
		"Passport":             model.CategoryID,
		"Driver License":       model.CategoryID,
		"Birth Certificate":    model.CategoryID,
	}
	return Ruleset{Rules: rules, Categories: categories}
}

// LoadRuleset reads the keyword and category sources and assembles a
// Ruleset. Loading is total: any failure to read or parse either source
// falls back to DefaultRuleset, because classification must remain possible
// for every document. Malformed rows are skipped, not fatal. A subcategory
// present in one source but not the other degrades via the Other fallback.
func LoadRuleset(keywordPath, categoryPath string) Ruleset {
	rules, err := loadKeywordRules(keywordPath)
	if err != nil {
		slog.Warn("keyword source unavailable, using embedded defaults",
			"path", keywordPath, "error", err)
		return DefaultRuleset()
	}
	categories, err := loadCategories(categoryPath)
	if err != nil {
		slog.Warn("category source unavailable, using embedded defaults",
			"path", categoryPath, "error", err)
		return DefaultRuleset()
	}
	if len(rules) == 0 {
		slog.Warn("keyword source contained no usable rows, using embedded defaults",
			"path", keywordPath)
		return DefaultRuleset()
	}
	return Ruleset{Rules: rules, Categories: categories}
}

// loadKeywordRules parses rows of the form: subcategory,keyword;keyword;...
// Keywords are lowercased at load so the classifier only lowers the
// document text once.
func loadKeywordRules(path string) ([]KeywordRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rules []KeywordRule
	seen := make(map[string]bool)
	for line := 0; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse keyword source: %w", err)
		}
		if line == 0 && isHeaderRow(record) {
			continue
		}
		if len(record) < 2 {
			slog.Debug("skipping malformed keyword row", "line", line+1)
			continue
		}
		sub := strings.TrimSpace(record[0])
		if sub == "" || seen[sub] {
			continue
		}
		var keywords []string
		for _, kw := range strings.Split(record[1], ";") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			slog.Debug("skipping keyword row with no keywords", "subcategory", sub)
			continue
		}
		seen[sub] = true
		rules = append(rules, KeywordRule{Subcategory: sub, Keywords: keywords})
	}
	return rules, nil
}

// loadCategories parses rows of the form: subcategory,category.
func loadCategories(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	categories := make(map[string]string)
	for line := 0; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse category source: %w", err)
		}
		if line == 0 && isHeaderRow(record) {
			continue
		}
		if len(record) < 2 {
			slog.Debug("skipping malformed category row", "line", line+1)
			continue
		}
		sub := strings.TrimSpace(record[0])
		cat := strings.TrimSpace(record[1])
		if sub == "" || cat == "" {
			continue
		}
		categories[sub] = cat
	}
	return categories, nil
}

func isHeaderRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "subcategory")
}
