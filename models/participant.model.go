package models

import (
	"time"

	"gorm.io/gorm"
)

// Participant statuses. There is deliberately no enforced transition graph:
// an admin may set any status, matching the flexibility the KOMPASS review
// process needs in practice.
const (
	ParticipantStatusRegistered         = "registered"
	ParticipantStatusDocumentsPending   = "documents_pending"
	ParticipantStatusDocumentsSubmitted = "documents_submitted"
	ParticipantStatusDocumentsApproved  = "documents_approved"
	ParticipantStatusDocumentsRejected  = "documents_rejected"
	ParticipantStatusEnrolled           = "enrolled"
	ParticipantStatusCompleted          = "completed"
	ParticipantStatusDroppedOut         = "dropped_out"
)

// Participant is a registrant of a course within a tenant.
type Participant struct {
	gorm.Model
	TenantID   uint  `gorm:"index;not null" json:"tenant_id"`
	CourseID   uint  `gorm:"index;not null" json:"course_id"`
	ScheduleID *uint `gorm:"index" json:"schedule_id"`
	UserID     *uint `gorm:"index" json:"user_id"` // optional self-service login

	Salutation string     `json:"salutation"`
	FirstName  string     `gorm:"not null" json:"first_name"`
	LastName   string     `gorm:"not null" json:"last_name"`
	Email      string     `gorm:"index;not null" json:"email"`
	Phone      string     `json:"phone"`
	Street     string     `json:"street"`
	ZipCode    string     `json:"zip_code"`
	City       string     `json:"city"`
	BirthDate  *time.Time `json:"birth_date"`

	// Self-employment data from the Fördercheck
	CompanyName       string     `json:"company_name"`
	FoundingDate      *time.Time `json:"founding_date"`
	FundingPercentage int        `gorm:"default:0" json:"funding_percentage"`
	FundingAmountCents int64     `gorm:"default:0" json:"funding_amount_cents"`

	Status    string `gorm:"default:'registered';index" json:"status"`
	Notes     string `gorm:"type:text" json:"notes"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}

// ValidParticipantStatus reports whether s is a known participant status.
func ValidParticipantStatus(s string) bool {
	switch s {
	case ParticipantStatusRegistered, ParticipantStatusDocumentsPending,
		ParticipantStatusDocumentsSubmitted, ParticipantStatusDocumentsApproved,
		ParticipantStatusDocumentsRejected, ParticipantStatusEnrolled,
		ParticipantStatusCompleted, ParticipantStatusDroppedOut:
		return true
	}
	return false
}
