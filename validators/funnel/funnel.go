package funnelValidator

import (
	"strings"
	"time"

	"foerderpilot/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// foerdercheckPayload mirrors the funnel's eligibility questionnaire.
type foerdercheckPayload struct {
	EmploymentType     string     `json:"employment_type" validate:"required"`
	IncomeRatioPercent int        `json:"income_ratio_percent" validate:"min=0,max=100"`
	StaffCountVZA      float64    `json:"staff_count_vza" validate:"min=0"`
	SelfEmployedSince  *time.Time `json:"self_employed_since" validate:"required"`
	UsedPriorVoucher   bool       `json:"used_prior_voucher"`
	PriorVoucherDate   *time.Time `json:"prior_voucher_date"`
}

// Foerdercheck rejects submissions violating the hard date rules before the
// handler runs: at least 6 months of self-employment and at least 12 months
// since a prior voucher.
func Foerdercheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(foerdercheckPayload)
		if err := c.BodyParser(payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(payload); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "EmploymentType":
					errors["employment_type"] = "Bitte geben Sie Ihre Beschäftigungsart an!"
				case "SelfEmployedSince":
					errors["self_employed_since"] = "Bitte geben Sie den Beginn Ihrer Selbstständigkeit an!"
				case "IncomeRatioPercent":
					errors["income_ratio_percent"] = "Der Einkommensanteil muss zwischen 0 und 100 liegen!"
				case "StaffCountVZA":
					errors["staff_count_vza"] = "Die Mitarbeiterzahl darf nicht negativ sein!"
				}
			}
		}

		now := time.Now()
		if payload.SelfEmployedSince != nil && payload.SelfEmployedSince.After(now.AddDate(0, -6, 0)) {
			errors["self_employed_since"] = "Die Selbstständigkeit muss seit mindestens 6 Monaten bestehen!"
		}
		if payload.UsedPriorVoucher {
			if payload.PriorVoucherDate == nil {
				errors["prior_voucher_date"] = "Bitte geben Sie das Datum des letzten Qualifizierungsschecks an!"
			} else if payload.PriorVoucherDate.After(now.AddDate(-1, 0, 0)) {
				errors["prior_voucher_date"] = "Zwischen zwei Qualifizierungsschecks müssen mindestens 12 Monate liegen!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}

// submitPayload carries the personal data of the final funnel step.
type submitPayload struct {
	CourseID  uint   `json:"course_id" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	ZipCode   string `json:"zip_code"`
}

// Submit validates the registration step of the funnel.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(submitPayload)
		if err := c.BodyParser(payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(payload); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CourseID":
					errors["course_id"] = "Bitte wählen Sie einen Kurs aus!"
				case "FirstName":
					errors["first_name"] = "Bitte geben Sie Ihren Vornamen an!"
				case "LastName":
					errors["last_name"] = "Bitte geben Sie Ihren Nachnamen an!"
				case "Email":
					errors["email"] = "Ungültige E-Mail-Adresse!"
				}
			}
		}
		if payload.ZipCode != "" && len(strings.TrimSpace(payload.ZipCode)) != 5 {
			errors["zip_code"] = "Die Postleitzahl muss 5 Ziffern haben!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}
