// Package model defines the core domain types shared across the pipeline.
package model

// Document categories. Every subcategory resolves to exactly one of these;
// CategoryError is reserved for documents that failed processing entirely.
const (
	CategoryIncome      = "Income"
	CategoryDownPayment = "Down Payment"
	CategoryID          = "ID"
	CategoryOther       = "Other"
	CategoryError       = "Error"
)

// SubcategoryUnknown is returned when no classification tier produced a label.
const SubcategoryUnknown = "Unknown"

// ClassificationTier records which stage of the classifier produced a label.
type ClassificationTier string

// Classification tier constants.
const (
	TierRule    ClassificationTier = "RULE"
	TierModel   ClassificationTier = "MODEL"
	TierDefault ClassificationTier = "DEFAULT"
)

// ClassificationResult is the outcome of subcategory classification.
type ClassificationResult struct {
	Subcategory string             `json:"subcategory"`
	Category    string             `json:"category"`
	Tier        ClassificationTier `json:"tier"`
}
