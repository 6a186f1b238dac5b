// Package tfidf consumes a trained text-classification artifact: a TF-IDF
// vocabulary plus a linear model with one weight row per class. The artifact
// is produced by offline training and exported as JSON:
//
//	{
//	  "vocabulary": {"balance": 0, "passport": 1, ...},
//	  "idf": [1.2, 2.3, ...],
//	  "classes": ["Paystub", "RBC Chequing", ...],
//	  "coefficients": [[...], ...],
//	  "intercepts": [0.1, ...]
//	}
//
// Prediction vectorizes the text (term frequency scaled by idf, L2
// normalized), scores each class with a dot product, and returns the
// highest-scoring label.
package tfidf

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/loandesk/docsort/internal/common"
)

// Artifact is the on-disk JSON layout of a trained model.
type Artifact struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Classes      []string       `json:"classes"`
	Coefficients [][]float64    `json:"coefficients"`
	Intercepts   []float64      `json:"intercepts"`
}

// Model scores document text against the trained classes.
type Model struct {
	vocab      map[string]int
	idf        []float64
	classes    []string
	coef       [][]float64
	intercepts []float64
}

// Tokens of two or more word characters, matching the training tokenizer.
var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9_]{2,}`)

// Load reads and validates a model artifact. Any error here disables the
// fallback tier at the call site; it never aborts the process.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no artifact at %s", common.ErrModelUnavailable, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	return New(artifact)
}

// New builds a Model from an already-decoded artifact, validating that the
// vocabulary, idf vector, and per-class weights agree on dimensions.
func New(artifact Artifact) (*Model, error) {
	if len(artifact.Classes) == 0 {
		return nil, fmt.Errorf("model artifact has no classes")
	}
	if len(artifact.Vocabulary) == 0 {
		return nil, fmt.Errorf("model artifact has an empty vocabulary")
	}
	if len(artifact.IDF) != len(artifact.Vocabulary) {
		return nil, fmt.Errorf("idf length %d does not match vocabulary size %d",
			len(artifact.IDF), len(artifact.Vocabulary))
	}
	if len(artifact.Coefficients) != len(artifact.Classes) {
		return nil, fmt.Errorf("coefficient rows %d do not match class count %d",
			len(artifact.Coefficients), len(artifact.Classes))
	}
	if len(artifact.Intercepts) != len(artifact.Classes) {
		return nil, fmt.Errorf("intercept count %d does not match class count %d",
			len(artifact.Intercepts), len(artifact.Classes))
	}
	for i, row := range artifact.Coefficients {
		if len(row) != len(artifact.Vocabulary) {
			return nil, fmt.Errorf("coefficient row %d has %d weights, want %d",
				i, len(row), len(artifact.Vocabulary))
		}
	}
	for term, idx := range artifact.Vocabulary {
		if idx < 0 || idx >= len(artifact.IDF) {
			return nil, fmt.Errorf("vocabulary term %q has out-of-range index %d", term, idx)
		}
	}
	return &Model{
		vocab:      artifact.Vocabulary,
		idf:        artifact.IDF,
		classes:    artifact.Classes,
		coef:       artifact.Coefficients,
		intercepts: artifact.Intercepts,
	}, nil
}

// Classes returns the labels the model can predict.
func (m *Model) Classes() []string {
	return m.classes
}

// Predict returns the highest-scoring class label for the given text.
func (m *Model) Predict(text string) (string, error) {
	vector := m.vectorize(text)

	best := 0
	bestScore := math.Inf(-1)
	for i, row := range m.coef {
		score := m.intercepts[i]
		for idx, weight := range vector {
			score += row[idx] * weight
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return m.classes[best], nil
}

// vectorize computes the sparse L2-normalized tf-idf vector of the text,
// keyed by vocabulary index.
func (m *Model) vectorize(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if idx, ok := m.vocab[token]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx := range counts {
		counts[idx] *= m.idf[idx]
		norm += counts[idx] * counts[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}
