// Package export produces XLSX workbooks from stored document results.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/loandesk/docsort/internal/storage"
)

// Service reads stored results and renders them as a workbook.
type Service struct {
	store  *storage.Store
	logger *slog.Logger
}

// NewService creates an export service over the given store.
func NewService(store *storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

const sheetName = "Documents"

var headers = []string{
	"Processed At",
	"Original Filename",
	"Category",
	"Subcategory",
	"Renamed Filename",
	"Client",
	"Document Date",
	"Amount",
	"Account",
	"Error",
}

// ResultsXLSX returns a workbook (as bytes) containing up to limit stored
// results, newest first; limit <= 0 exports everything.
func (s *Service) ResultsXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	records, err := s.store.ListResults(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for row, rec := range records {
		values := []any{
			rec.ProcessedAt.Format(time.RFC3339),
			rec.Filename,
			rec.Category,
			rec.Subcategory,
			rec.RenamedFilename,
			rec.ClientName,
			rec.DocumentDate,
			rec.Amount,
			rec.AccountSuffix,
			rec.Error,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	s.logger.Info("exported results",
		"count", len(records),
		"duration", time.Since(start))

	return buf.Bytes(), nil
}
