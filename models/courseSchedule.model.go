package models

import (
	"time"

	"gorm.io/gorm"
)

// Course schedule statuses
const (
	ScheduleStatusScheduled  = "scheduled"
	ScheduleStatusInProgress = "in_progress"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusCancelled  = "cancelled"
)

// CourseSchedule is a concrete running of a course.
type CourseSchedule struct {
	gorm.Model
	TenantID  uint      `gorm:"index;not null" json:"tenant_id"`
	CourseID  uint      `gorm:"index;not null" json:"course_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Capacity  int       `gorm:"default:0" json:"capacity"` // 0 = unlimited
	Location  string    `json:"location"`
	Status    string    `gorm:"default:'scheduled'" json:"status"`
	IsDeleted bool      `gorm:"default:false" json:"-"`
}

// ValidScheduleStatus reports whether s is a known schedule status.
func ValidScheduleStatus(s string) bool {
	switch s {
	case ScheduleStatusScheduled, ScheduleStatusInProgress, ScheduleStatusCompleted, ScheduleStatusCancelled:
		return true
	}
	return false
}
