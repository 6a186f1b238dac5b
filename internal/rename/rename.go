// Package rename implements the deterministic filename policy applied to
// classified documents.
package rename

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/loandesk/docsort/internal/model"
)

// Filename derives the normalized name for a classified document. The
// policy branches exhaustively by category; the default branch guarantees
// every document gets a rename.
func Filename(category, subcategory string, meta model.ExtractedMetadata, originalFilename string) string {
	switch category {
	case model.CategoryIncome:
		date := meta.DocumentDate
		if date == "" {
			date = "Undated"
		}
		return fmt.Sprintf("%s_Income_%s_%s", meta.ClientName, subcategory, date)
	case model.CategoryDownPayment:
		return fmt.Sprintf("%s_DP_%s_%s_%s", meta.ClientName, meta.Amount, subcategory, meta.AccountSuffix)
	case model.CategoryID:
		return fmt.Sprintf("%s_ID_%s", meta.ClientName, subcategory)
	default:
		return fmt.Sprintf("%s_Other_%s", meta.ClientName, stripExtension(originalFilename))
	}
}

func stripExtension(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
