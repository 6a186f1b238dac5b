package main

import (
	"log/slog"

	"github.com/spf13/viper"

	"github.com/loandesk/docsort/internal/classify"
	"github.com/loandesk/docsort/internal/config"
	"github.com/loandesk/docsort/internal/pipeline"
	"github.com/loandesk/docsort/internal/textextract"
	"github.com/loandesk/docsort/internal/tfidf"
)

// buildClassifier assembles the ruleset and optional trained model from
// configuration. A missing or unreadable model disables the fallback tier
// with a warning; it never fails the command.
func buildClassifier() *classify.Classifier {
	ruleset := classify.LoadRuleset(
		config.ExpandPath(viper.GetString("classification.keywords")),
		config.ExpandPath(viper.GetString("classification.categories")),
	)

	var fallback classify.Model
	if modelPath := config.ExpandPath(viper.GetString("classification.model")); modelPath != "" {
		m, err := tfidf.Load(modelPath)
		if err != nil {
			slog.Warn("trained model unavailable, statistical fallback disabled",
				"path", modelPath, "error", err)
		} else {
			fallback = m
			slog.Info("trained model loaded", "path", modelPath, "classes", len(m.Classes()))
		}
	}

	return classify.NewClassifier(ruleset, fallback, slog.Default())
}

// buildPipeline wires the classifier behind the plain-text extractor.
func buildPipeline(classifier *classify.Classifier) *pipeline.Pipeline {
	cfg := pipeline.DefaultConfig()
	if days := viper.GetInt("pipeline.max_age_days"); days > 0 {
		cfg.MaxDocumentAgeDays = days
	}
	if workers := viper.GetInt("pipeline.workers"); workers > 0 {
		cfg.Workers = workers
	}
	return pipeline.NewWithConfig(textextract.NewPlainText(), classifier, slog.Default(), cfg)
}
