package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantValid      bool
		wantType       string
		wantExpiry     bool
		wantConfidence float64
	}{
		{
			name:           "passport with document number",
			text:           "Canadian PASSPORT\nDocument No: 123456",
			wantValid:      true,
			wantType:       "passport",
			wantConfidence: 0.8,
		},
		{
			name:           "passport with year token only",
			text:           "passport issued 2021",
			wantValid:      true,
			wantType:       "passport",
			wantConfidence: 0.8,
		},
		{
			name:           "indicator without any number",
			text:           "copy of my passport, number redacted",
			wantValid:      false,
			wantType:       "passport",
			wantConfidence: 0.8,
		},
		{
			name:           "number without indicator",
			text:           "reference 998877",
			wantValid:      false,
			wantType:       "unknown",
			wantConfidence: 0.3,
		},
		{
			name:           "driver license with expiry hint",
			text:           "Driver's License 55512345 expires 2027-01-01",
			wantValid:      true,
			wantType:       "driver",
			wantExpiry:     true,
			wantConfidence: 0.8,
		},
		{
			name:           "first indicator in priority order wins",
			text:           "identification: birth certificate 1990",
			wantValid:      true,
			wantType:       "identification",
			wantConfidence: 0.8,
		},
		{
			name:           "social insurance document",
			text:           "social insurance number 123 456 789 registered 1995",
			wantValid:      true,
			wantType:       "social insurance",
			wantConfidence: 0.8,
		},
		{
			name:           "empty text",
			text:           "",
			wantValid:      false,
			wantType:       "unknown",
			wantConfidence: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ID(tt.text)
			assert.Equal(t, tt.wantValid, got.IsValidID)
			assert.Equal(t, tt.wantType, got.IDType)
			assert.Equal(t, tt.wantExpiry, got.HasExpiryHint)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 0.001)
		})
	}
}
