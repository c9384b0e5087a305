package userManagementValidator

import (
	"regexp"
	"strings"

	"foerderpilot/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Invite validates account invitation payloads.
func Invite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Bitte geben Sie einen Namen an!"
		}
		if reqData.Email == "" || !emailRe.MatchString(reqData.Email) {
			errors["email"] = "Ungültige E-Mail-Adresse!"
		}
		if reqData.Role == "" {
			errors["role"] = "Bitte wählen Sie eine Rolle aus!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}
