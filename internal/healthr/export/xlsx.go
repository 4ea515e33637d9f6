package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vaibhaw-/HealthR/internal/healthr/synth"
)

const (
	hospitalsSheet = "hospitals"
	patientsSheet  = "patients"
)

// WriteXLSX writes both tables into one workbook, a sheet per table, with a
// bold frozen header row.
func WriteXLSX(path string, hospitals synth.HospitalTable, patients synth.PatientTable) error {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the hospitals sheet
	if err := f.SetSheetName("Sheet1", hospitalsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(patientsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	hrows := make([][]any, len(hospitals))
	for i, h := range hospitals {
		hrows[i] = h.Record()
	}
	if err := writeSheet(f, hospitalsSheet, synth.HospitalColumns, hrows, headerStyle); err != nil {
		return err
	}

	prows := make([][]any, len(patients))
	for i, p := range patients {
		prows[i] = p.Record()
	}
	if err := writeSheet(f, patientsSheet, synth.PatientColumns, prows, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		// nil cells stay empty
		values := make([]any, len(row))
		for c, v := range row {
			if v == nil {
				v = ""
			}
			values[c] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
