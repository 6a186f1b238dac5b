package textextract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PlainText extracts text from UTF-8 documents (txt, csv, md, and any file
// whose bytes decode cleanly). Raster formats need an OCR-backed Extractor;
// this implementation rejects them so the pipeline reports a per-document
// error instead of classifying binary garbage.
type PlainText struct{}

// NewPlainText returns the UTF-8 file extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

var binaryExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".heic": true,
}

// ExtractText implements Extractor.
func (p *PlainText) ExtractText(_ context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if binaryExtensions[ext] {
		return "", fmt.Errorf("no text decoder configured for %s files", ext)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid UTF-8 text", filename)
	}
	return string(data), nil
}
