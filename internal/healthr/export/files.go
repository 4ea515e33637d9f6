package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vaibhaw-/HealthR/internal/healthr/logger"
	"github.com/vaibhaw-/HealthR/internal/healthr/synth"
)

// Supported export formats.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatNDJSON = "ndjson"
)

const (
	hospitalFile = "hospital_data"
	patientFile  = "patient_data"
	workbookFile = "healthcare_data.xlsx"
)

// Files writes both tables into dir in the given format and returns the
// paths written. dir is created if missing.
func Files(dir, format string, hospitals synth.HospitalTable, patients synth.PatientTable) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	log := logger.L()

	var paths []string
	switch format {
	case "", FormatCSV:
		hp := filepath.Join(dir, hospitalFile+".csv")
		if err := writeFile(hp, func(w io.Writer) error { return WriteHospitalsCSV(w, hospitals) }); err != nil {
			return nil, err
		}
		pp := filepath.Join(dir, patientFile+".csv")
		if err := writeFile(pp, func(w io.Writer) error { return WritePatientsCSV(w, patients) }); err != nil {
			return nil, err
		}
		paths = []string{hp, pp}

	case FormatNDJSON:
		hrows := make([][]any, len(hospitals))
		for i, h := range hospitals {
			hrows[i] = h.Record()
		}
		prows := make([][]any, len(patients))
		for i, p := range patients {
			prows[i] = p.Record()
		}
		hp := filepath.Join(dir, hospitalFile+".ndjson")
		if err := writeFile(hp, func(w io.Writer) error { return writeRecordsNDJSON(w, synth.HospitalColumns, hrows) }); err != nil {
			return nil, err
		}
		pp := filepath.Join(dir, patientFile+".ndjson")
		if err := writeFile(pp, func(w io.Writer) error { return writeRecordsNDJSON(w, synth.PatientColumns, prows) }); err != nil {
			return nil, err
		}
		paths = []string{hp, pp}

	case FormatXLSX:
		p := filepath.Join(dir, workbookFile)
		if err := WriteXLSX(p, hospitals, patients); err != nil {
			return nil, err
		}
		paths = []string{p}

	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	log.Infow("datasets exported", "format", format, "dir", dir, "hospitals", len(hospitals), "patients", len(patients))
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
