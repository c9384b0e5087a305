package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Workflow question field types
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeSelect   = "select"
)

// WorkflowTemplate is a configurable questionnaire whose answers feed the
// funding-application narrative. Nil TenantID means system scope; a set
// CourseID narrows the template to one course.
type WorkflowTemplate struct {
	gorm.Model
	TenantID  *uint  `gorm:"index" json:"tenant_id"`
	CourseID  *uint  `gorm:"index" json:"course_id"`
	Name      string `gorm:"not null" json:"name"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	Questions []WorkflowQuestion `gorm:"foreignKey:TemplateID" json:"questions,omitempty"`
}

type WorkflowQuestion struct {
	gorm.Model
	TemplateID uint           `gorm:"index;not null" json:"template_id"`
	Position   int            `gorm:"default:0" json:"position"`
	Prompt     string         `gorm:"not null" json:"prompt"`
	HelpText   string         `json:"help_text"`
	FieldType  string         `gorm:"default:'textarea'" json:"field_type"`
	Options    datatypes.JSON `json:"options"` // for select fields
	Required   bool           `gorm:"default:true" json:"required"`
	IsDeleted  bool           `gorm:"default:false" json:"-"`
}

// ParticipantWorkflowAnswer stores one participant's answer to one question
// together with the LLM-generated formal narrative derived from it.
type ParticipantWorkflowAnswer struct {
	gorm.Model
	TenantID           uint   `gorm:"index;not null" json:"tenant_id"`
	ParticipantID      uint   `gorm:"index;not null" json:"participant_id"`
	QuestionID         uint   `gorm:"index;not null" json:"question_id"`
	Answer             string `gorm:"type:text" json:"answer"`
	GeneratedNarrative string `gorm:"type:text" json:"generated_narrative"`
}
