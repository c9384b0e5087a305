package models

import (
	"time"

	"gorm.io/gorm"
)

// Sammeltermin is a scheduled group appointment where participants of a
// course submit their documents for funding review.
type Sammeltermin struct {
	gorm.Model
	TenantID           uint      `gorm:"index;not null" json:"tenant_id"`
	CourseID           uint      `gorm:"index;not null" json:"course_id"`
	Title              string    `gorm:"not null" json:"title"`
	AppointmentDate    time.Time `gorm:"not null;index" json:"appointment_date"`
	SubmissionDeadline time.Time `gorm:"not null" json:"submission_deadline"`
	ReviewerName       string    `json:"reviewer_name"`
	ReviewerEmail      string    `json:"reviewer_email"`
	Notes              string    `gorm:"type:text" json:"notes"`
	ReminderSent       bool      `gorm:"default:false" json:"reminder_sent"`
	IsDeleted          bool      `gorm:"default:false" json:"-"`
}
