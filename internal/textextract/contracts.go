// Package textextract defines the boundary to the external text-extraction
// collaborator that turns uploaded file bytes into a single text blob.
package textextract

import "context"

// Extractor yields the text content of an uploaded document. An empty
// string (never an error) is the contract for "no text recoverable"; errors
// are reserved for unreadable or unsupported inputs and are absorbed at the
// document boundary by the pipeline.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) (string, error)
}
