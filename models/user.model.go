package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleSuperAdmin      = "super_admin"
	RoleAdmin           = "admin"
	RoleKompassReviewer = "kompass_reviewer"
	RoleUser            = "user"
)

type User struct {
	gorm.Model
	Name     string `gorm:"default:''" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // bcrypt hash; empty for OAuth-only accounts
	Role     string `gorm:"default:'user'" json:"role"`

	// Nil tenant means super admin; everyone else belongs to exactly one tenant.
	TenantID *uint `gorm:"index" json:"tenant_id"`

	// External OAuth identity (optional)
	OAuthProvider string `json:"oauth_provider,omitempty"`
	OAuthSubject  string `gorm:"index" json:"-"`

	ResetToken       string     `gorm:"index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	LastLogin *time.Time `json:"last_login"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	IsDeleted bool       `gorm:"default:false" json:"-"`
}

// IsSuperAdmin reports whether the user may act across tenants.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
