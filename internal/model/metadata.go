package model

// ExtractedMetadata holds the fields derived from document text by the
// metadata extractors. Every field carries its documented default when the
// corresponding extractor found nothing.
type ExtractedMetadata struct {
	// ClientName is the detected client name, or "Client" when unresolved.
	ClientName string `json:"client_name"`
	// DocumentDate is the canonical date ("YYYY" or "YYYY_MM"), empty when
	// no recognizable date exists in the text.
	DocumentDate string `json:"document_date,omitempty"`
	// Amount is the display form of the detected amount: "$0", "$<n>" for
	// values under 1000, "$<n>K" (floor-divided) otherwise.
	Amount string `json:"amount"`
	// AccountSuffix is "#" plus the last 3 digits of the detected account
	// number, or "#000" when unresolved.
	AccountSuffix string `json:"account_suffix"`
}
