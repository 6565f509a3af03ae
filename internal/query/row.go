package query

import (
	"bytes"
	"encoding/json"
)

// Row is an ordered mapping from column name to a JSON-safe value. It
// preserves the column order of the database result, which plain Go maps
// (and encoding/json's map rendering) would lose.
//
// Column names are not required to be unique. A statement like
// SELECT 1 AS x, 2 AS x produces a row that marshals to {"x":1,"x":2};
// JSON parsers that collapse duplicate keys typically keep the last value.
// Callers that need every column under JSON should alias columns uniquely.
type Row struct {
	cols []string
	vals []any
}

// NewRow builds a row from parallel column and value slices.
func NewRow(cols []string, vals []any) Row {
	return Row{cols: cols, vals: vals}
}

// Columns returns the column names in result order.
func (r Row) Columns() []string {
	return r.cols
}

// Len returns the number of columns.
func (r Row) Len() int {
	return len(r.cols)
}

// Value returns the value at column index i.
func (r Row) Value(i int) any {
	return r.vals[i]
}

// Get returns the value for a column name. With duplicate display names the
// first occurrence wins.
func (r Row) Get(name string) (any, bool) {
	for i, c := range r.cols {
		if c == name {
			return r.vals[i], true
		}
	}
	return nil, false
}

// MarshalJSON renders the row as a JSON object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
