package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vaibhaw-/HealthR/internal/healthr/store"
	"github.com/vaibhaw-/HealthR/internal/healthr/synth"
)

// WriteHospitalsCSV writes the header row and one line per hospital, in
// store column order.
func WriteHospitalsCSV(w io.Writer, hospitals synth.HospitalTable) error {
	rows := make([][]any, len(hospitals))
	for i, h := range hospitals {
		rows[i] = h.Record()
	}
	return writeCSV(w, synth.HospitalColumns, rows)
}

// WritePatientsCSV writes the header row and one line per patient. A
// missing days_to_readmission is an empty field.
func WritePatientsCSV(w io.Writer, patients synth.PatientTable) error {
	rows := make([][]any, len(patients))
	for i, p := range patients {
		rows[i] = p.Record()
	}
	return writeCSV(w, synth.PatientColumns, rows)
}

// WriteRowSetCSV writes a query result with its column names as header.
func WriteRowSetCSV(w io.Writer, rs *store.RowSet) error {
	return writeCSV(w, rs.Columns, rs.Rows)
}

func writeCSV(w io.Writer, header []string, rows [][]any) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(header))
	for n, row := range rows {
		for i, v := range row {
			record[i] = formatField(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", n+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// formatField renders a cell the way the store would return it as text.
func formatField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", t)
	}
}
