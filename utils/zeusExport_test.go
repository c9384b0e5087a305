package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "4500,00 €", FormatEuro(450000))
	assert.Equal(t, "12,05 €", FormatEuro(1205))
	assert.Equal(t, "0,00 €", FormatEuro(0))
}

func TestBuildZeusWorkbook(t *testing.T) {
	rows := []ZeusRow{{
		ParticipantID:     7,
		FirstName:         "Max",
		LastName:          "Mustermann",
		Email:             "max@test.local",
		CourseTitle:       "Digital Marketing",
		PriceGross:        FormatEuro(250000),
		FundingPercentage: 90,
		FundingAmount:     FormatEuro(225000),
		Status:            "Eingeschrieben",
		DocumentsComplete: true,
	}}

	data, err := BuildZeusWorkbook(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Z-EU-S Export"}, f.GetSheetList())

	header, err := f.GetCellValue("Z-EU-S Export", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Teilnehmer-ID", header)

	firstName, err := f.GetCellValue("Z-EU-S Export", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Max", firstName)

	complete, err := f.GetCellValue("Z-EU-S Export", "R2")
	require.NoError(t, err)
	assert.Equal(t, "Ja", complete)
}
