package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loandesk/docsort/internal/model"
)

type stubModel struct {
	label string
	err   error
}

func (s *stubModel) Predict(_ string) (string, error) {
	return s.label, s.err
}

func testRuleset() Ruleset {
	return Ruleset{
		Rules: []KeywordRule{
			{Subcategory: "Paystub", Keywords: []string{"paystub", "payroll"}},
			{Subcategory: "RBC Chequing", Keywords: []string{"rbc chequing"}},
			{Subcategory: "Passport", Keywords: []string{"passport"}},
		},
		Categories: map[string]string{
			"Paystub":      model.CategoryIncome,
			"RBC Chequing": model.CategoryDownPayment,
			"Passport":     model.CategoryID,
		},
	}
}

func TestClassifier_RuleTier(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantSubcategory string
		wantCategory    string
	}{
		{
			name:            "single keyword match",
			text:            "Attached is my PAYROLL summary for March",
			wantSubcategory: "Paystub",
			wantCategory:    model.CategoryIncome,
		},
		{
			name:            "keyword is case insensitive substring",
			text:            "rbc chequing account statement",
			wantSubcategory: "RBC Chequing",
			wantCategory:    model.CategoryDownPayment,
		},
		{
			name:            "earlier rule wins when multiple match",
			text:            "paystub deposited to rbc chequing",
			wantSubcategory: "Paystub",
			wantCategory:    model.CategoryIncome,
		},
		{
			name:            "later rule still reachable",
			text:            "canadian passport copy",
			wantSubcategory: "Passport",
			wantCategory:    model.CategoryID,
		},
	}

	c := NewClassifier(testRuleset(), nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.text)
			assert.Equal(t, tt.wantSubcategory, result.Subcategory)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, model.TierRule, result.Tier)
		})
	}
}

func TestClassifier_EachRuleReachableInOrder(t *testing.T) {
	// A text containing exactly one rule's keyword, and none of any
	// earlier rule's, must classify to that rule.
	rs := testRuleset()
	c := NewClassifier(rs, nil, nil)
	for _, rule := range rs.Rules {
		result := c.Classify("document mentioning " + rule.Keywords[0] + " only")
		assert.Equal(t, rule.Subcategory, result.Subcategory)
	}
}

func TestClassifier_ModelFallback(t *testing.T) {
	t.Run("model consulted when no rule matches", func(t *testing.T) {
		c := NewClassifier(testRuleset(), &stubModel{label: "RBC Chequing"}, nil)
		result := c.Classify("nothing the rules recognize")
		assert.Equal(t, "RBC Chequing", result.Subcategory)
		assert.Equal(t, model.CategoryDownPayment, result.Category)
		assert.Equal(t, model.TierModel, result.Tier)
	})

	t.Run("model label outside category map resolves to Other", func(t *testing.T) {
		c := NewClassifier(testRuleset(), &stubModel{label: "Utility Bill"}, nil)
		result := c.Classify("monthly service charges")
		assert.Equal(t, "Utility Bill", result.Subcategory)
		assert.Equal(t, model.CategoryOther, result.Category)
	})

	t.Run("model failure falls through to default tier", func(t *testing.T) {
		c := NewClassifier(testRuleset(), &stubModel{err: errors.New("malformed artifact")}, nil)
		result := c.Classify("nothing the rules recognize")
		assert.Equal(t, model.SubcategoryUnknown, result.Subcategory)
		assert.Equal(t, model.CategoryOther, result.Category)
		assert.Equal(t, model.TierDefault, result.Tier)
	})

	t.Run("rule tier bypasses the model", func(t *testing.T) {
		c := NewClassifier(testRuleset(), &stubModel{label: "Passport"}, nil)
		result := c.Classify("paystub for march")
		assert.Equal(t, "Paystub", result.Subcategory)
		assert.Equal(t, model.TierRule, result.Tier)
	})
}

func TestClassifier_DefaultTier(t *testing.T) {
	c := NewClassifier(testRuleset(), nil, nil)

	result := c.Classify("")
	assert.Equal(t, model.SubcategoryUnknown, result.Subcategory)
	assert.Equal(t, model.CategoryOther, result.Category)
	assert.Equal(t, model.TierDefault, result.Tier)
}
