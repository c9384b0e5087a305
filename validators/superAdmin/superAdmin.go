package superAdminValidator

import (
	"regexp"
	"strings"

	"foerderpilot/middleware"

	"github.com/gofiber/fiber/v2"
)

var (
	emailRe     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// CreateTenant validates tenant creation payloads.
func CreateTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name       string `json:"name"`
			AdminEmail string `json:"admin_email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Bitte geben Sie einen Anbieternamen an!"
		}
		if reqData.AdminEmail != "" && !emailRe.MatchString(reqData.AdminEmail) {
			errors["admin_email"] = "Ungültige E-Mail-Adresse!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}

// UpdateTenant validates tenant update payloads.
func UpdateTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Subdomain string `json:"subdomain"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		if reqData.Subdomain != "" && !subdomainRe.MatchString(reqData.Subdomain) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"subdomain": "Subdomains dürfen nur Kleinbuchstaben, Ziffern und Bindestriche enthalten!",
			})
		}
		return c.Next()
	}
}
