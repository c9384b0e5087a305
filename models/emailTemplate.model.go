package models

import "gorm.io/gorm"

// EmailTemplate is an optional per-tenant override of one of the built-in
// notification templates, looked up by key before falling back to the
// hard-coded default.
type EmailTemplate struct {
	gorm.Model
	TenantID  uint   `gorm:"index;not null" json:"tenant_id"`
	Key       string `gorm:"index;not null" json:"key"` // welcome, status_change, ...
	Subject   string `json:"subject"`
	Heading   string `json:"heading"`
	BodyHTML  string `gorm:"type:text" json:"body_html"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
