package middleware

import (
	"net"
	"strings"

	"foerderpilot/database"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SuperAdminPrefix marks routes that operate across tenants; tenant
// resolution is skipped for them entirely.
const SuperAdminPrefix = "/api/superadmin"

// hosts that can never carry a subdomain
var bareHosts = map[string]bool{
	"localhost": true,
	"www":       true,
}

// ResolveTenant derives the active tenant from the request's Host header and
// stores it in the request context. Custom domains win over subdomains. A
// missing tenant is allowed (public procedures); an inactive tenant is not.
func ResolveTenant(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), SuperAdminPrefix) {
		return c.Next()
	}

	host := normalizeHost(c.Hostname())
	if host == "" {
		return c.Next()
	}

	db := database.Database.Db

	// Custom domain first
	var tenant models.Tenant
	err := db.Where("custom_domain = ?", host).First(&tenant).Error
	if err == gorm.ErrRecordNotFound {
		sub := subdomainOf(host)
		if sub == "" {
			return c.Next()
		}
		err = db.Where("subdomain = ?", sub).First(&tenant).Error
		if err == gorm.ErrRecordNotFound {
			return c.Next()
		}
	}
	if err != nil {
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Mandant konnte nicht ermittelt werden!", nil)
	}

	if !tenant.IsActive {
		return JsonResponse(c, fiber.StatusForbidden, false, "Dieser Anbieter ist derzeit deaktiviert!", nil)
	}

	c.Locals("tenant", &tenant)
	return c.Next()
}

// CurrentTenant returns the tenant resolved for this request, or nil.
func CurrentTenant(c *fiber.Ctx) *models.Tenant {
	tenant, _ := c.Locals("tenant").(*models.Tenant)
	return tenant
}

// normalizeHost lowercases the host and strips an optional port.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}

// subdomainOf returns the leftmost dot-separated label, or "" when the host
// is bare, an IP address or a reserved name.
func subdomainOf(host string) string {
	if net.ParseIP(host) != nil {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return ""
	}
	label := parts[0]
	if bareHosts[label] || label == "" {
		return ""
	}
	return label
}
