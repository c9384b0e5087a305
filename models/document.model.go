package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// KOMPASS document types: eligibility phase and reimbursement phase.
const (
	DocTypeBusinessRegistration  = "business_registration"
	DocTypeTaxAssessment         = "tax_assessment"
	DocTypeRevenueProof          = "revenue_proof"
	DocTypeIDCard                = "id_card"
	DocTypeCV                    = "cv"
	DocTypeDeMinimisDeclaration  = "de_minimis_declaration"
	DocTypeInvoice               = "invoice"
	DocTypePaymentProof          = "payment_proof"
	DocTypeAttendanceCertificate = "attendance_certificate"
)

// Document validation statuses
const (
	ValidationStatusPending      = "pending"
	ValidationStatusValidating   = "validating"
	ValidationStatusValid        = "valid"
	ValidationStatusInvalid      = "invalid"
	ValidationStatusManualReview = "manual_review"
)

// DocumentTypes lists all KOMPASS document types in submission order.
var DocumentTypes = []string{
	DocTypeBusinessRegistration,
	DocTypeTaxAssessment,
	DocTypeRevenueProof,
	DocTypeIDCard,
	DocTypeCV,
	DocTypeDeMinimisDeclaration,
	DocTypeInvoice,
	DocTypePaymentProof,
	DocTypeAttendanceCertificate,
}

// EligibilityDocumentTypes are the types required for a complete funding
// application (the reimbursement-phase types come after course completion).
var EligibilityDocumentTypes = []string{
	DocTypeBusinessRegistration,
	DocTypeTaxAssessment,
	DocTypeRevenueProof,
	DocTypeIDCard,
	DocTypeCV,
	DocTypeDeMinimisDeclaration,
}

// Document is an uploaded file tied to a participant. The file lives in the
// file store; the row carries the key, the public URL and the LLM verdict.
type Document struct {
	gorm.Model
	TenantID      uint   `gorm:"index;not null" json:"tenant_id"`
	ParticipantID uint   `gorm:"index;not null" json:"participant_id"`
	Type          string `gorm:"index;not null" json:"type"`

	FileURL   string `gorm:"not null" json:"file_url"`
	FileKey   string `gorm:"not null" json:"file_key"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `gorm:"default:0" json:"size_bytes"`

	ValidationStatus string         `gorm:"default:'pending';index" json:"validation_status"`
	ValidationResult datatypes.JSON `json:"validation_result"`
	ValidatedAt      *time.Time     `json:"validated_at"`

	IsDeleted bool `gorm:"default:false" json:"-"`
}

// ValidDocumentType reports whether t is a known KOMPASS document type.
func ValidDocumentType(t string) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// ValidValidationStatus reports whether s is a known validation status.
func ValidValidationStatus(s string) bool {
	switch s {
	case ValidationStatusPending, ValidationStatusValidating, ValidationStatusValid,
		ValidationStatusInvalid, ValidationStatusManualReview:
		return true
	}
	return false
}
