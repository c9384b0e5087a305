package registerController

import (
	"testing"
	"time"

	"foerderpilot/utils"

	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestEvaluateFoerdercheck(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	eligible := FoerdercheckInput{
		ResidencyGermany:   true,
		EmploymentType:     EmploymentSelfEmployed,
		IncomeRatioPercent: 80,
		StaffCountVZA:      0.5,
		SelfEmployedSince:  datePtr(now.AddDate(-2, 0, 0)),
	}

	t.Run("eligible", func(t *testing.T) {
		res := EvaluateFoerdercheck(eligible, now)
		assert.True(t, res.Eligible)
		assert.Equal(t, 90, res.FundingPercentage)
		assert.Equal(t, utils.MaxFundingCents, res.MaxFundingCents)
		assert.Empty(t, res.Reason)
	})

	t.Run("eligible freelancer", func(t *testing.T) {
		input := eligible
		input.EmploymentType = EmploymentFreelancer
		assert.True(t, EvaluateFoerdercheck(input, now).Eligible)
	})

	rejections := []struct {
		name   string
		mutate func(*FoerdercheckInput)
	}{
		{"no german residency", func(in *FoerdercheckInput) { in.ResidencyGermany = false }},
		{"employee", func(in *FoerdercheckInput) { in.EmploymentType = "angestellt" }},
		{"income below majority", func(in *FoerdercheckInput) { in.IncomeRatioPercent = 50 }},
		{"full time staff", func(in *FoerdercheckInput) { in.StaffCountVZA = 1.0 }},
		{"self employed 4 months", func(in *FoerdercheckInput) {
			in.SelfEmployedSince = datePtr(now.AddDate(0, -4, 0))
		}},
		{"missing start date", func(in *FoerdercheckInput) { in.SelfEmployedSince = nil }},
		{"de-minimis cap reached", func(in *FoerdercheckInput) { in.PriorStateAidCents = 30000000 }},
		{"voucher 8 months ago", func(in *FoerdercheckInput) {
			in.UsedPriorVoucher = true
			in.PriorVoucherDate = datePtr(now.AddDate(0, -8, 0))
		}},
		{"voucher without date", func(in *FoerdercheckInput) { in.UsedPriorVoucher = true }},
	}
	for _, tc := range rejections {
		t.Run(tc.name, func(t *testing.T) {
			input := eligible
			tc.mutate(&input)
			res := EvaluateFoerdercheck(input, now)
			assert.False(t, res.Eligible)
			assert.NotEmpty(t, res.Reason)
			assert.Zero(t, res.FundingPercentage)
		})
	}

	t.Run("voucher 13 months ago passes cooldown", func(t *testing.T) {
		input := eligible
		input.UsedPriorVoucher = true
		input.PriorVoucherDate = datePtr(now.AddDate(0, -13, 0))
		assert.True(t, EvaluateFoerdercheck(input, now).Eligible)
	})

	t.Run("exactly six months is enough", func(t *testing.T) {
		input := eligible
		input.SelfEmployedSince = datePtr(now.AddDate(0, -6, 0))
		assert.True(t, EvaluateFoerdercheck(input, now).Eligible)
	})
}
