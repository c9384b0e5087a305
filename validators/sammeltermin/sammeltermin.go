package sammelterminValidator

import (
	"strings"
	"time"

	"foerderpilot/middleware"

	"github.com/gofiber/fiber/v2"
)

// Save validates Sammeltermin create/update payloads.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title              string     `json:"title"`
			AppointmentDate    *time.Time `json:"appointment_date"`
			SubmissionDeadline *time.Time `json:"submission_deadline"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Bitte geben Sie einen Titel an!"
		}
		if reqData.AppointmentDate == nil {
			errors["appointment_date"] = "Bitte geben Sie das Termindatum an!"
		}
		if reqData.SubmissionDeadline == nil {
			errors["submission_deadline"] = "Bitte geben Sie die Abgabefrist an!"
		} else if reqData.AppointmentDate != nil && reqData.SubmissionDeadline.After(*reqData.AppointmentDate) {
			errors["submission_deadline"] = "Die Abgabefrist muss vor dem Termin liegen!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}
