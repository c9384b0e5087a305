package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Vorvertrag statuses
const (
	VorvertragStatusSigned   = "signed"
	VorvertragStatusDeclined = "declined"
)

// Vorvertrag is the pre-contract a participant signs before enrollment:
// a set of checkbox consents plus signature data.
type Vorvertrag struct {
	gorm.Model
	TenantID      uint `gorm:"index;not null" json:"tenant_id"`
	ParticipantID uint `gorm:"index;not null" json:"participant_id"`

	// Consents is a JSON array of {key, label, accepted}.
	Consents      datatypes.JSON `json:"consents"`
	SignatureData string         `gorm:"type:mediumtext" json:"-"` // base64 PNG
	SignedName    string         `json:"signed_name"`

	Status   string     `gorm:"default:'signed'" json:"status"`
	SignedAt *time.Time `json:"signed_at"`
}
