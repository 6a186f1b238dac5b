package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loandesk/docsort/internal/classify"
	"github.com/loandesk/docsort/internal/model"
)

// echoExtractor returns the raw bytes as text, failing for filenames
// registered as broken.
type echoExtractor struct {
	broken map[string]error
}

func (e *echoExtractor) ExtractText(_ context.Context, data []byte, filename string) (string, error) {
	if err, ok := e.broken[filename]; ok {
		return "", err
	}
	return string(data), nil
}

func testClassifier() *classify.Classifier {
	rs := classify.Ruleset{
		Rules: []classify.KeywordRule{
			{Subcategory: "Paystub", Keywords: []string{"paystub"}},
			{Subcategory: "RBC Chequing", Keywords: []string{"rbc chequing"}},
			{Subcategory: "Passport", Keywords: []string{"passport"}},
		},
		Categories: map[string]string{
			"Paystub":      model.CategoryIncome,
			"RBC Chequing": model.CategoryDownPayment,
			"Passport":     model.CategoryID,
		},
	}
	return classify.NewClassifier(rs, nil, nil)
}

func newTestPipeline(extractor *echoExtractor) *Pipeline {
	return New(extractor, testClassifier(), nil)
}

func TestPipeline_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("income document gets a recency validation", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{})
		text := "Client: John Smith\npaystub for 2024-03\nAmount: $2,100.00"

		result := p.Process(ctx, Input{Filename: "doc.txt", Data: []byte(text)})

		assert.Equal(t, model.CategoryIncome, result.Category)
		assert.Equal(t, "Paystub", result.Subcategory)
		assert.Equal(t, "John Smith_Income_Paystub_2024_03", result.RenamedFilename)
		assert.Empty(t, result.Error)
		require.NotNil(t, result.DateValidation)
		assert.Nil(t, result.IDValidation)
		assert.Equal(t, "2024_03", result.DateValidation.DocumentDate)
	})

	t.Run("id document gets an id validation", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{})
		text := "Canadian passport\nDocument No: 123456"

		result := p.Process(ctx, Input{Filename: "passport.txt", Data: []byte(text)})

		assert.Equal(t, model.CategoryID, result.Category)
		require.NotNil(t, result.IDValidation)
		assert.True(t, result.IDValidation.IsValidID)
		assert.Nil(t, result.DateValidation)
		assert.Equal(t, "Client_ID_Passport", result.RenamedFilename)
	})

	t.Run("unclassified document lands in Other with no validation", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{})

		result := p.Process(ctx, Input{Filename: "notes.txt", Data: []byte("grocery list")})

		assert.Equal(t, model.CategoryOther, result.Category)
		assert.Equal(t, model.SubcategoryUnknown, result.Subcategory)
		assert.Equal(t, "Client_Other_notes", result.RenamedFilename)
		assert.Nil(t, result.IDValidation)
		assert.Nil(t, result.DateValidation)
	})

	t.Run("extraction failure yields an error result", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{broken: map[string]error{
			"bad.pdf": errors.New("unreadable file"),
		}})

		result := p.Process(ctx, Input{Filename: "bad.pdf", Data: []byte{0xFF}})

		assert.Equal(t, model.CategoryError, result.Category)
		assert.Equal(t, model.SubcategoryUnknown, result.Subcategory)
		assert.Contains(t, result.Error, "unreadable file")
		assert.Equal(t, "bad.pdf", result.RenamedFilename)
	})

	t.Run("empty text produces the no-text preview", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{})

		result := p.Process(ctx, Input{Filename: "blank.txt", Data: []byte("   \n\t")})

		assert.Equal(t, NoTextMessage, result.TextPreview)
		assert.Equal(t, model.CategoryOther, result.Category)
		assert.Empty(t, result.Error)
	})

	t.Run("preview is truncated to the limit", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{})
		long := "paystub " + strings.Repeat("x", 3000)

		result := p.Process(ctx, Input{Filename: "long.txt", Data: []byte(long)})

		assert.Len(t, []rune(result.TextPreview), model.PreviewLimit)
	})
}

func TestPipeline_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("one failing document does not abort the batch", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{broken: map[string]error{
			"two.pdf": errors.New("extraction exploded"),
		}})

		inputs := []Input{
			{Filename: "one.txt", Data: []byte("paystub march")},
			{Filename: "two.pdf", Data: []byte{0x00}},
			{Filename: "three.txt", Data: []byte("rbc chequing balance: $9,000")},
		}

		results := p.ProcessBatch(ctx, inputs)

		require.Len(t, results, 3)
		assert.Equal(t, model.CategoryIncome, results["one.txt"].Category)
		assert.Equal(t, model.CategoryError, results["two.pdf"].Category)
		assert.Equal(t, model.CategoryDownPayment, results["three.txt"].Category)

		errCount := 0
		for _, r := range results {
			if r.Category == model.CategoryError {
				errCount++
			}
		}
		assert.Equal(t, 1, errCount)
	})

	t.Run("results are keyed by original filename", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{})

		inputs := []Input{
			{Filename: "a.txt", Data: []byte("passport 123456")},
			{Filename: "b.txt", Data: []byte("paystub")},
		}

		results := p.ProcessBatch(ctx, inputs)

		require.Len(t, results, 2)
		assert.Equal(t, "a.txt", results["a.txt"].Filename)
		assert.Equal(t, "b.txt", results["b.txt"].Filename)
	})

	t.Run("empty batch yields an empty result set", func(t *testing.T) {
		p := newTestPipeline(&echoExtractor{})
		results := p.ProcessBatch(ctx, nil)
		assert.Empty(t, results)
	})
}
