package courseValidator

import (
	"strings"

	"foerderpilot/middleware"

	"github.com/gofiber/fiber/v2"
)

// Save validates course create/update payloads.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title             string `json:"title"`
			PriceNetCents     int64  `json:"price_net_cents"`
			PriceGrossCents   int64  `json:"price_gross_cents"`
			SubsidyPercentage int    `json:"subsidy_percentage"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Der Kurstitel muss mindestens 3 Zeichen lang sein!"
		}
		if reqData.PriceNetCents < 0 || reqData.PriceGrossCents < 0 {
			errors["price"] = "Preise dürfen nicht negativ sein!"
		}
		if reqData.PriceGrossCents > 0 && reqData.PriceGrossCents < reqData.PriceNetCents {
			errors["price"] = "Der Bruttopreis darf nicht unter dem Nettopreis liegen!"
		}
		if reqData.SubsidyPercentage < 0 || reqData.SubsidyPercentage > 100 {
			errors["subsidy_percentage"] = "Der Fördersatz muss zwischen 0 und 100 liegen!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}

// SaveSchedule validates schedule create/update payloads.
func SaveSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
			Capacity  int    `json:"capacity"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if reqData.StartDate == "" {
			errors["start_date"] = "Bitte geben Sie ein Startdatum an!"
		}
		if reqData.EndDate == "" {
			errors["end_date"] = "Bitte geben Sie ein Enddatum an!"
		}
		if reqData.Capacity < 0 {
			errors["capacity"] = "Die Kapazität darf nicht negativ sein!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}
