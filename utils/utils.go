package utils

import (
	"strings"

	"github.com/google/uuid"
)

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// Slugify turns a company name into a lowercase, dash-separated subdomain
// candidate. German umlauts are transliterated.
func Slugify(name string) string {
	s := umlautReplacer.Replace(strings.TrimSpace(name))
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// RandomSuffix returns n characters of a random hex string, used to
// disambiguate colliding subdomains and file keys.
func RandomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// GrossFromNet applies the regular 19% German VAT rate to a net price in
// cents, rounding half up.
func GrossFromNet(netCents int64) int64 {
	return (netCents*119 + 50) / 100
}

// FundingAmountCents computes the subsidized share of a gross price, capped
// at the KOMPASS maximum reimbursement.
func FundingAmountCents(grossCents int64, subsidyPercentage int) int64 {
	amount := grossCents * int64(subsidyPercentage) / 100
	if amount > MaxFundingCents {
		return MaxFundingCents
	}
	return amount
}

// MaxFundingCents is the KOMPASS reimbursement cap (€4,500.00).
const MaxFundingCents int64 = 450000
