package utils

import (
	"testing"

	"foerderpilot/models"

	"github.com/stretchr/testify/assert"
)

func TestMapValidationStatus(t *testing.T) {
	cases := []struct {
		name   string
		result ValidationResult
		want   string
	}{
		{"rejected", ValidationResult{IsValid: false, Confidence: 99}, models.ValidationStatusInvalid},
		{"confident approval", ValidationResult{IsValid: true, Confidence: 95}, models.ValidationStatusValid},
		{"threshold approval", ValidationResult{IsValid: true, Confidence: 80}, models.ValidationStatusValid},
		{"uncertain approval", ValidationResult{IsValid: true, Confidence: 79}, models.ValidationStatusManualReview},
		{"zero confidence", ValidationResult{IsValid: true, Confidence: 0}, models.ValidationStatusManualReview},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapValidationStatus(tc.result))
		})
	}
}
