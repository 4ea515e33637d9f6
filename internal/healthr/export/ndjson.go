package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vaibhaw-/HealthR/internal/healthr/store"
)

// WriteRowSetNDJSON writes each row of rs as one JSON object per line,
// keyed by column name. NULL cells become JSON null.
func WriteRowSetNDJSON(w io.Writer, rs *store.RowSet) error {
	for i, row := range rs.Maps() {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row %d to JSON: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}

// writeRecordsNDJSON writes records with the given column names.
func writeRecordsNDJSON(w io.Writer, columns []string, rows [][]any) error {
	return WriteRowSetNDJSON(w, &store.RowSet{Columns: columns, Rows: rows})
}
