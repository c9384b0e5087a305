package participantValidator

import (
	"regexp"
	"strings"

	"foerderpilot/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Save validates participant create/update payloads from the dashboard.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.FirstName) == "" {
			errors["first_name"] = "Bitte geben Sie den Vornamen an!"
		}
		if strings.TrimSpace(reqData.LastName) == "" {
			errors["last_name"] = "Bitte geben Sie den Nachnamen an!"
		}
		if reqData.Email == "" || !emailRe.MatchString(reqData.Email) {
			errors["email"] = "Ungültige E-Mail-Adresse!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}
