package model

// IDValidation reports plausibility signals for identity documents.
// Confidence is a coarse heuristic score, not a calibrated probability.
type IDValidation struct {
	IDType        string  `json:"id_type"`
	IsValidID     bool    `json:"is_valid_id"`
	HasExpiryHint bool    `json:"has_expiry_hint"`
	Confidence    float64 `json:"confidence"`
}

// DateValidation reports whether a document's canonical date falls within
// the allowed recency window. When the date is missing or unparsable,
// IsValid is false and Reason explains why; DaysOld is nil in that case.
type DateValidation struct {
	DocumentDate   string `json:"document_date,omitempty"`
	Reason         string `json:"reason,omitempty"`
	DaysOld        *int   `json:"days_old,omitempty"`
	MaxAllowedDays int    `json:"max_allowed_days"`
	IsValid        bool   `json:"is_valid"`
}
