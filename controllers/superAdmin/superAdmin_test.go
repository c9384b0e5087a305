package superAdminController

import (
	"regexp"
	"testing"

	"foerderpilot/testutil"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSubdomain(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)

	t.Run("free slug is used directly", func(t *testing.T) {
		assert.Equal(t, "mueller-akademie", GenerateSubdomain(db, "Müller Akademie"))
	})

	t.Run("collision appends a random suffix", func(t *testing.T) {
		testutil.CreateTenant(t, db, "Bildungswerk Süd", "bildungswerk-sued")

		got := GenerateSubdomain(db, "Bildungswerk Süd")
		assert.Regexp(t, regexp.MustCompile(`^bildungswerk-sued-[0-9a-f]{5}$`), got)
	})

	t.Run("empty name falls back to a generic slug", func(t *testing.T) {
		assert.Equal(t, "anbieter", GenerateSubdomain(db, "!!!"))
	})
}
