package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Müller Akademie GmbH", "mueller-akademie-gmbh"},
		{"Weiterbildung Köln", "weiterbildung-koeln"},
		{"  Straße & Söhne  ", "strasse-soehne"},
		{"ABC123", "abc123"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestRandomSuffix(t *testing.T) {
	s := RandomSuffix(5)
	assert.Len(t, s, 5)
	assert.NotEqual(t, s, RandomSuffix(5))
}

func TestGrossFromNet(t *testing.T) {
	// 19% VAT, rounded half up
	assert.Equal(t, int64(11900), GrossFromNet(10000))
	assert.Equal(t, int64(119), GrossFromNet(100))
	assert.Equal(t, int64(1), GrossFromNet(1))
	assert.Equal(t, int64(0), GrossFromNet(0))
}

func TestFundingAmountCents(t *testing.T) {
	// 90% of €1,000.00
	assert.Equal(t, int64(90000), FundingAmountCents(100000, 90))

	// capped at the KOMPASS maximum
	assert.Equal(t, MaxFundingCents, FundingAmountCents(1000000, 90))

	assert.Equal(t, int64(0), FundingAmountCents(0, 90))
}
