package classify

import (
	"log/slog"
	"strings"

	"github.com/loandesk/docsort/internal/model"
)

// Model is the trained fallback classifier collaborator. It may be entirely
// absent (a nil Model skips the fallback tier); a Predict failure is treated
// as the tier producing no result, never as a pipeline failure.
type Model interface {
	Predict(text string) (string, error)
}

// Classifier assigns a subcategory to document text using three tiers:
// ordered keyword rules, the trained model, then the Unknown sentinel.
type Classifier struct {
	ruleset Ruleset
	model   Model
	logger  *slog.Logger
}

// NewClassifier creates a classifier over the given ruleset. model may be
// nil when no trained artifact is available.
func NewClassifier(ruleset Ruleset, fallback Model, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{ruleset: ruleset, model: fallback, logger: logger}
}

// Ruleset returns the configuration the classifier was built with.
func (c *Classifier) Ruleset() Ruleset {
	return c.ruleset
}

// HasModel reports whether the fallback tier is available.
func (c *Classifier) HasModel() bool {
	return c.model != nil
}

// Classify assigns a subcategory and category to the given text. The first
// rule (in ruleset order) with any keyword occurring as a case-insensitive
// substring wins; otherwise the trained model is consulted; otherwise the
// result is Unknown/Other.
func (c *Classifier) Classify(text string) model.ClassificationResult {
	lower := strings.ToLower(text)

	for _, rule := range c.ruleset.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return model.ClassificationResult{
					Subcategory: rule.Subcategory,
					Category:    c.ruleset.CategoryFor(rule.Subcategory),
					Tier:        model.TierRule,
				}
			}
		}
	}

	if c.model != nil {
		sub, err := c.model.Predict(text)
		if err != nil {
			c.logger.Debug("model fallback failed, falling through to default tier", "error", err)
		} else if sub != "" {
			return model.ClassificationResult{
				Subcategory: sub,
				Category:    c.ruleset.CategoryFor(sub),
				Tier:        model.TierModel,
			}
		}
	}

	return model.ClassificationResult{
		Subcategory: model.SubcategoryUnknown,
		Category:    c.ruleset.CategoryFor(model.SubcategoryUnknown),
		Tier:        model.TierDefault,
	}
}
