package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loandesk/docsort/internal/common"
	"github.com/loandesk/docsort/internal/model"
)

// DocumentRecord is one persisted processing outcome.
type DocumentRecord struct {
	ID              string
	Filename        string
	Category        string
	Subcategory     string
	RenamedFilename string
	ClientName      string
	DocumentDate    string
	Amount          string
	AccountSuffix   string
	Error           string
	ProcessedAt     time.Time
}

// SaveResult records a processed document and returns the record ID.
func (s *Store) SaveResult(ctx context.Context, result model.DocumentResult) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO document_results
			(id, filename, category, subcategory, renamed_filename,
			 client_name, document_date, amount, account_suffix, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		result.Filename,
		result.Category,
		result.Subcategory,
		result.RenamedFilename,
		result.Metadata.ClientName,
		result.Metadata.DocumentDate,
		result.Metadata.Amount,
		result.Metadata.AccountSuffix,
		result.Error,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save document result: %w", err)
	}
	return id, nil
}

// GetResult fetches a single record by ID.
func (s *Store) GetResult(ctx context.Context, id string) (*DocumentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, category, subcategory, renamed_filename,
		       client_name, document_date, amount, account_suffix, error, processed_at
		FROM document_results WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document result %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document result: %w", err)
	}
	return rec, nil
}

// ListResults returns up to limit records, most recently processed first.
// A limit of 0 or less returns everything.
func (s *Store) ListResults(ctx context.Context, limit int) ([]DocumentRecord, error) {
	query := `
		SELECT id, filename, category, subcategory, renamed_filename,
		       client_name, document_date, amount, account_suffix, error, processed_at
		FROM document_results
		ORDER BY processed_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list document results: %w", err)
	}
	defer rows.Close()

	var records []DocumentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document result: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// CountByCategory returns the number of stored results per category.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM document_results GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*DocumentRecord, error) {
	var rec DocumentRecord
	err := row.Scan(
		&rec.ID,
		&rec.Filename,
		&rec.Category,
		&rec.Subcategory,
		&rec.RenamedFilename,
		&rec.ClientName,
		&rec.DocumentDate,
		&rec.Amount,
		&rec.AccountSuffix,
		&rec.Error,
		&rec.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
