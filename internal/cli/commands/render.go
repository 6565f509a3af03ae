package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/pglens/internal/query"
)

func renderRows(w io.Writer, rows []query.Row, format string) error {
	switch format {
	case "json":
		return renderJSON(w, rows)
	case "csv":
		return renderCSV(w, rows)
	case "md", "markdown":
		return renderMarkdown(w, rows)
	default:
		return renderTable(w, rows)
	}
}

func renderTable(w io.Writer, rows []query.Row) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	cols := rows[0].Columns()
	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, r := range rows {
		row := make(table.Row, r.Len())
		for i := 0; i < r.Len(); i++ {
			row[i] = formatValue(r.Value(i))
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return nil
}

func renderJSON(w io.Writer, rows []query.Row) error {
	if rows == nil {
		rows = []query.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderCSV(w io.Writer, rows []query.Row) error {
	if len(rows) == 0 {
		return nil
	}

	cols := rows[0].Columns()
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))

	for _, r := range rows {
		values := make([]string, r.Len())
		for i := 0; i < r.Len(); i++ {
			values[i] = escapeCSV(formatValue(r.Value(i)))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, rows []query.Row) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	cols := rows[0].Columns()
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range rows {
		values := make([]string, r.Len())
		for i := 0; i < r.Len(); i++ {
			values[i] = formatValue(r.Value(i))
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case map[string]any, []any:
		// Nested JSON documents render as compact JSON
		b, err := json.Marshal(val)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
