package models

import "gorm.io/gorm"

// Course is a bookable offering of a tenant. Prices are stored in cents.
type Course struct {
	gorm.Model
	TenantID    uint   `gorm:"index;not null" json:"tenant_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	PriceNetCents     int64 `gorm:"default:0" json:"price_net_cents"`
	PriceGrossCents   int64 `gorm:"default:0" json:"price_gross_cents"`
	SubsidyPercentage int   `gorm:"default:90" json:"subsidy_percentage"` // KOMPASS funding rate

	DurationHours   int    `gorm:"default:0" json:"duration_hours"`
	MaxParticipants int    `gorm:"default:0" json:"max_participants"` // 0 = unlimited
	StartText       string `json:"start_text"`                        // free-form schedule metadata ("monatlich", "auf Anfrage")

	IsPublished bool `gorm:"default:false" json:"is_published"`
	IsActive    bool `gorm:"default:true" json:"is_active"`
	IsDeleted   bool `gorm:"default:false" json:"-"`
}
