package model

// PreviewLimit bounds the number of characters of document text echoed back
// in a DocumentResult.
const PreviewLimit = 1000

// DocumentResult is the unit produced per input document. It is assembled
// once by the pipeline and never mutated afterward. A failed document still
// yields a result, with Category set to CategoryError and Error holding the
// offending message, so a batch of N inputs always produces N results.
type DocumentResult struct {
	Filename        string            `json:"filename"`
	Category        string            `json:"category"`
	Subcategory     string            `json:"subcategory"`
	RenamedFilename string            `json:"renamed"`
	TextPreview     string            `json:"text"`
	Metadata        ExtractedMetadata `json:"metadata"`
	IDValidation    *IDValidation     `json:"id_validation,omitempty"`
	DateValidation  *DateValidation   `json:"date_validation,omitempty"`
	Error           string            `json:"error,omitempty"`
}
