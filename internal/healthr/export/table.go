package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vaibhaw-/HealthR/internal/healthr/store"
)

// WriteRowSetTable renders rs as aligned columns for a terminal.
func WriteRowSetTable(w io.Writer, rs *store.RowSet) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(rs.Columns, "\t")))
	for _, row := range rs.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				fields[i] = "NULL"
				continue
			}
			fields[i] = formatField(v)
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t"))
	}
	return tw.Flush()
}

// WriteRowSet writes rs in the named format: table, csv or ndjson.
func WriteRowSet(w io.Writer, format string, rs *store.RowSet) error {
	switch format {
	case "", "table":
		return WriteRowSetTable(w, rs)
	case FormatCSV:
		return WriteRowSetCSV(w, rs)
	case FormatNDJSON:
		return WriteRowSetNDJSON(w, rs)
	}
	return fmt.Errorf("unsupported output format %q", format)
}
