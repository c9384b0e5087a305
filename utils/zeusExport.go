package utils

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ZeusRow is one participant's funding-application data, flattened for
// manual entry into the Z-EU-S portal.
type ZeusRow struct {
	ParticipantID     uint
	Salutation        string
	FirstName         string
	LastName          string
	Email             string
	BirthDate         string
	Street            string
	ZipCode           string
	City              string
	CompanyName       string
	FoundingDate      string
	CourseTitle       string
	CourseStart       string
	PriceGross        string
	FundingPercentage int
	FundingAmount     string
	Status            string
	DocumentsComplete bool
	MissingDocuments  string
	Narrative         string
}

// zeusExportHeader is the spreadsheet header, matching Z-EU-S field order.
var zeusExportHeader = []string{
	"Teilnehmer-ID",
	"Anrede",
	"Vorname",
	"Nachname",
	"E-Mail",
	"Geburtsdatum",
	"Straße",
	"PLZ",
	"Ort",
	"Unternehmen",
	"Gründungsdatum",
	"Kurs",
	"Kursbeginn",
	"Kursgebühr (brutto)",
	"Fördersatz (%)",
	"Förderbetrag",
	"Status",
	"Unterlagen vollständig",
	"Fehlende Unterlagen",
	"Begründung",
}

// BuildZeusWorkbook renders the export rows as an XLSX workbook for manual
// portal entry.
func BuildZeusWorkbook(rows []ZeusRow) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Z-EU-S Export"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, h := range zeusExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, row := range rows {
		complete := "Nein"
		if row.DocumentsComplete {
			complete = "Ja"
		}
		values := []interface{}{
			row.ParticipantID, row.Salutation, row.FirstName, row.LastName,
			row.Email, row.BirthDate, row.Street, row.ZipCode, row.City,
			row.CompanyName, row.FoundingDate, row.CourseTitle, row.CourseStart,
			row.PriceGross, row.FundingPercentage, row.FundingAmount,
			row.Status, complete, row.MissingDocuments, row.Narrative,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatEuro renders cents as a German-style euro amount.
func FormatEuro(cents int64) string {
	return fmt.Sprintf("%d,%02d €", cents/100, cents%100)
}
