package registerController

import (
	"time"

	"foerderpilot/middleware"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

// Employment types eligible for KOMPASS
const (
	EmploymentSelfEmployed = "selbstaendig"
	EmploymentFreelancer   = "freiberuflich"
)

// De-minimis ceiling (€300,000.00 over three fiscal years).
const deMinimisCapCents int64 = 30000000

// FoerdercheckInput is the eligibility questionnaire of the public funnel.
type FoerdercheckInput struct {
	ResidencyGermany   bool       `json:"residency_germany"`
	EmploymentType     string     `json:"employment_type" validate:"required"`
	IncomeRatioPercent int        `json:"income_ratio_percent"` // share of income from self-employment
	StaffCountVZA      float64    `json:"staff_count_vza"`      // full-time equivalents employed
	SelfEmployedSince  *time.Time `json:"self_employed_since" validate:"required"`
	PriorStateAidCents int64      `json:"prior_state_aid_cents"`
	UsedPriorVoucher   bool       `json:"used_prior_voucher"`
	PriorVoucherDate   *time.Time `json:"prior_voucher_date"`
}

// FoerdercheckResult is the funnel's verdict.
type FoerdercheckResult struct {
	Eligible          bool   `json:"eligible"`
	FundingPercentage int    `json:"funding_percentage,omitempty"`
	MaxFundingCents   int64  `json:"max_funding_cents,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// EvaluateFoerdercheck applies the KOMPASS eligibility rules. The 6-month
// self-employment minimum and the 12-month voucher cooldown are also
// enforced by the route validator so a violation never reaches any side
// effect; re-checking here keeps the function self-contained.
func EvaluateFoerdercheck(input FoerdercheckInput, now time.Time) FoerdercheckResult {
	reject := func(reason string) FoerdercheckResult {
		return FoerdercheckResult{Eligible: false, Reason: reason}
	}

	if !input.ResidencyGermany {
		return reject("Die Förderung setzt einen Wohnsitz bzw. Betriebssitz in Deutschland voraus.")
	}
	if input.EmploymentType != EmploymentSelfEmployed && input.EmploymentType != EmploymentFreelancer {
		return reject("KOMPASS richtet sich ausschließlich an Solo-Selbstständige und Freiberufler.")
	}
	if input.IncomeRatioPercent < 51 {
		return reject("Mindestens 51% Ihres Einkommens müssen aus der selbstständigen Tätigkeit stammen.")
	}
	if input.StaffCountVZA >= 1 {
		return reject("Es darf höchstens eine Teilzeitkraft (weniger als ein Vollzeitäquivalent) beschäftigt sein.")
	}
	if input.SelfEmployedSince == nil || input.SelfEmployedSince.After(now.AddDate(0, -6, 0)) {
		return reject("Die Selbstständigkeit muss seit mindestens 6 Monaten bestehen.")
	}
	if input.PriorStateAidCents >= deMinimisCapCents {
		return reject("Die De-minimis-Obergrenze für staatliche Beihilfen ist bereits erreicht.")
	}
	if input.UsedPriorVoucher {
		if input.PriorVoucherDate == nil || input.PriorVoucherDate.After(now.AddDate(-1, 0, 0)) {
			return reject("Zwischen zwei KOMPASS-Qualifizierungsschecks müssen mindestens 12 Monate liegen.")
		}
	}

	return FoerdercheckResult{
		Eligible:          true,
		FundingPercentage: 90,
		MaxFundingCents:   utils.MaxFundingCents,
	}
}

// Foerdercheck is the funnel's eligibility mutation.
func Foerdercheck(c *fiber.Ctx) error {
	input := new(FoerdercheckInput)
	if err := c.BodyParser(input); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	result := EvaluateFoerdercheck(*input, time.Now())
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", result)
}
