package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is a Bildungsträger (educational provider). Tenants are created by
// super admins, toggled active/inactive and never hard-deleted.
type Tenant struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Subdomain    string `gorm:"uniqueIndex;not null" json:"subdomain"`
	// CustomDomain uniqueness is enforced in the super admin handlers since
	// most tenants leave it empty.
	CustomDomain string `gorm:"index" json:"custom_domain"`

	// Branding
	PrimaryColor   string `gorm:"default:'#1a56db'" json:"primary_color"`
	SecondaryColor string `gorm:"default:'#7e3af2'" json:"secondary_color"`
	LogoURL        string `json:"logo_url"`

	// Legal / company data
	CompanyName  string `json:"company_name"`
	LegalForm    string `json:"legal_form"`
	Street       string `json:"street"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	VatID        string `json:"vat_id"`

	// Certification metadata (AZAV etc.)
	CertName       string     `json:"cert_name"`
	CertifiedUntil *time.Time `json:"certified_until"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}
