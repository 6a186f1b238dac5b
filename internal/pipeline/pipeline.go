// Package pipeline orchestrates per-document processing: text extraction,
// classification, metadata extraction, category-conditional validation, and
// renaming. Failures are absorbed at the document boundary so one bad
// document never aborts a batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/loandesk/docsort/internal/classify"
	"github.com/loandesk/docsort/internal/extract"
	"github.com/loandesk/docsort/internal/model"
	"github.com/loandesk/docsort/internal/rename"
	"github.com/loandesk/docsort/internal/textextract"
	"github.com/loandesk/docsort/internal/validate"
)

// NoTextMessage replaces the preview when extraction yields nothing usable.
const NoTextMessage = "No text extracted from document"

// Input is one uploaded document: its original filename and raw bytes.
type Input struct {
	Filename string
	Data     []byte
}

// Config holds pipeline tuning options.
type Config struct {
	// MaxDocumentAgeDays bounds the recency validator window.
	MaxDocumentAgeDays int
	// Workers bounds batch concurrency. Documents share no mutable state,
	// so the only ceiling is the text-extraction collaborator's.
	Workers int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MaxDocumentAgeDays: validate.DefaultMaxDocumentAgeDays,
		Workers:            4,
	}
}

// Pipeline processes documents using an injected text extractor and
// classifier. It holds no mutable state of its own.
type Pipeline struct {
	extractor  textextract.Extractor
	classifier *classify.Classifier
	logger     *slog.Logger
	now        func() time.Time
	cfg        Config
}

// New creates a pipeline with the default configuration.
func New(extractor textextract.Extractor, classifier *classify.Classifier, logger *slog.Logger) *Pipeline {
	return NewWithConfig(extractor, classifier, logger, DefaultConfig())
}

// NewWithConfig creates a pipeline with custom configuration.
func NewWithConfig(extractor textextract.Extractor, classifier *classify.Classifier, logger *slog.Logger, cfg Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxDocumentAgeDays <= 0 {
		cfg.MaxDocumentAgeDays = validate.DefaultMaxDocumentAgeDays
	}
	return &Pipeline{
		extractor:  extractor,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

// Process classifies a single document. It never returns an error: any
// failure inside extraction, classification, or validation produces a
// result with Category set to Error and the message preserved.
func (p *Pipeline) Process(ctx context.Context, in Input) (result model.DocumentResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("document processing panicked", "filename", in.Filename, "panic", r)
			result = p.errorResult(in.Filename, fmt.Errorf("internal error: %v", r))
		}
	}()

	text, err := p.extractor.ExtractText(ctx, in.Data, in.Filename)
	if err != nil {
		p.logger.Warn("text extraction failed", "filename", in.Filename, "error", err)
		return p.errorResult(in.Filename, fmt.Errorf("error reading file: %w", err))
	}

	preview := truncate(text, model.PreviewLimit)
	if strings.TrimSpace(text) == "" {
		preview = NoTextMessage
	}

	classification := p.classifier.Classify(text)
	meta := extract.Metadata(text)

	result = model.DocumentResult{
		Filename:        in.Filename,
		Category:        classification.Category,
		Subcategory:     classification.Subcategory,
		RenamedFilename: rename.Filename(classification.Category, classification.Subcategory, meta, in.Filename),
		TextPreview:     preview,
		Metadata:        meta,
	}

	switch classification.Category {
	case model.CategoryID:
		v := validate.ID(text)
		result.IDValidation = &v
	case model.CategoryIncome, model.CategoryDownPayment:
		v := validate.Recency(meta.DocumentDate, p.now(), p.cfg.MaxDocumentAgeDays)
		result.DateValidation = &v
	}

	p.logger.Debug("document processed",
		"filename", in.Filename,
		"category", result.Category,
		"subcategory", result.Subcategory,
		"tier", classification.Tier)

	return result
}

// ProcessBatch runs the pipeline over every input and returns one result
// per document, keyed by original filename. Documents are independent and
// processed concurrently; there is no ordering guarantee among them.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs []Input) map[string]model.DocumentResult {
	results := make(map[string]model.DocumentResult, len(inputs))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, p.cfg.Workers)

	for _, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(in Input) {
			defer wg.Done()
			defer func() { <-sem }()

			r := p.Process(ctx, in)

			mu.Lock()
			results[in.Filename] = r
			mu.Unlock()
		}(in)
	}
	wg.Wait()

	return results
}

func (p *Pipeline) errorResult(filename string, err error) model.DocumentResult {
	return model.DocumentResult{
		Filename:        filename,
		Category:        model.CategoryError,
		Subcategory:     model.SubcategoryUnknown,
		RenamedFilename: filename,
		TextPreview:     err.Error(),
		Metadata: model.ExtractedMetadata{
			ClientName:    extract.DefaultName,
			Amount:        extract.DefaultAmount,
			AccountSuffix: extract.DefaultAccountSuffix,
		},
		Error: err.Error(),
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
