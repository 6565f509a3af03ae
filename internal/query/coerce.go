package query

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Coerce maps a database-native value to its JSON-safe representation. The
// mapping is total and deterministic:
//
//   - numeric → float64 (precision may be lossy; select ::text for exact decimals)
//   - date → "2006-01-02", timestamp/timestamptz → RFC 3339 string
//   - uuid → lowercase hyphenated string
//   - bytea → base64 string
//   - arrays → JSON array of coerced elements
//   - json/jsonb → the already-structured value, untouched
//   - bool/int/float/string → themselves
//   - everything else → the driver's display string
//
// oid is the column's PostgreSQL type OID; pass 0 when unknown (e.g. array
// elements), in which case coercion falls back to the Go type alone.
func Coerce(v any, oid uint32) any {
	if v == nil {
		return nil
	}

	// Date columns render without a time component.
	if oid == pgtype.DateOID {
		if t, ok := v.(time.Time); ok {
			return t.Format("2006-01-02")
		}
	}

	switch val := v.(type) {
	case bool, string, int, int8, int16, int32, int64, float32, float64:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case pgtype.Numeric:
		return coerceNumeric(val)
	case [16]byte:
		return uuid.UUID(val).String()
	case []byte:
		return base64.StdEncoding.EncodeToString(val)
	case map[string]any:
		// Decoded json/jsonb object; already JSON-shaped.
		return val
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Coerce(elem, 0)
		}
		return out
	}

	// Other native arrays decode to typed slices; coerce element-wise.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Coerce(rv.Index(i).Interface(), 0)
		}
		return out
	}

	return fmt.Sprint(v)
}

// coerceNumeric converts a numeric to float64. NaN and infinities are not
// representable in JSON numbers and come back as strings.
func coerceNumeric(n pgtype.Numeric) any {
	if !n.Valid {
		return nil
	}
	if n.NaN {
		return "NaN"
	}
	if n.InfinityModifier != pgtype.Finite {
		return n.InfinityModifier.String()
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		// Out of float64 range; fall back to the driver's text form.
		if dv, derr := n.Value(); derr == nil {
			return fmt.Sprint(dv)
		}
		return fmt.Sprint(n)
	}
	return f.Float64
}

// CoerceRow applies Coerce to every cell of a result row, preserving the
// result's column order.
func CoerceRow(fields []pgconn.FieldDescription, values []any) Row {
	cols := make([]string, len(fields))
	vals := make([]any, len(values))
	for i, fd := range fields {
		cols[i] = fd.Name
		vals[i] = Coerce(values[i], fd.DataTypeOID)
	}
	return NewRow(cols, vals)
}
