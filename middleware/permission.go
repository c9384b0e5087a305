package middleware

import (
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware that only lets the listed roles through.
// Must run after JWTMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Nicht angemeldet!", nil)
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "Keine Berechtigung für diese Aktion!", nil)
	}
}

// TenantScoped requires the caller's tenant to match the tenant resolved from
// the request host. Super admins and KOMPASS reviewers bypass the check.
// Must run after JWTMiddleware.
func TenantScoped(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Nicht angemeldet!", nil)
	}
	if user.Role == models.RoleSuperAdmin || user.Role == models.RoleKompassReviewer {
		return c.Next()
	}

	tenant := CurrentTenant(c)
	if tenant == nil {
		return JsonResponse(c, fiber.StatusForbidden, false, "Kein Anbieter für diese Anfrage ermittelt!", nil)
	}
	if user.TenantID == nil || *user.TenantID != tenant.ID {
		return JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Anbieter nicht erlaubt!", nil)
	}
	return c.Next()
}

// ScopeTenantID resolves the tenant id a handler must scope its queries to.
// Regular users are pinned to their own tenant; super admins and reviewers
// act within the tenant resolved from the host (0 when none was resolved,
// which matches no rows).
func ScopeTenantID(c *fiber.Ctx) uint {
	user := CurrentUser(c)
	if user != nil && user.TenantID != nil &&
		user.Role != models.RoleSuperAdmin && user.Role != models.RoleKompassReviewer {
		return *user.TenantID
	}
	if tenant := CurrentTenant(c); tenant != nil {
		return tenant.ID
	}
	if user != nil && user.TenantID != nil {
		return *user.TenantID
	}
	return 0
}
