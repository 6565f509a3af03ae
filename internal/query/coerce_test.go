package query

import (
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		oid  uint32
		want any
	}{
		{"nil", nil, pgtype.TextOID, nil},
		{"bool", true, pgtype.BoolOID, true},
		{"string", "hello", pgtype.TextOID, "hello"},
		{"int64", int64(42), pgtype.Int8OID, int64(42)},
		{"float64", 2.5, pgtype.Float8OID, 2.5},
		{"date drops time component", ts, pgtype.DateOID, "2024-03-15"},
		{"timestamp", ts, pgtype.TimestampOID, "2024-03-15T10:30:00Z"},
		{"timestamptz", ts, pgtype.TimestamptzOID, "2024-03-15T10:30:00Z"},
		{
			"uuid",
			[16]byte{0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8},
			pgtype.UUIDOID,
			"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		},
		{"bytea to base64", []byte{0xde, 0xad, 0xbe, 0xef}, pgtype.ByteaOID, "3q2+7w=="},
		{
			"json object untouched",
			map[string]any{"a": float64(1)},
			pgtype.JSONBOID,
			map[string]any{"a": float64(1)},
		},
		{
			"any array coerced element-wise",
			[]any{ts, nil},
			0,
			[]any{"2024-03-15T10:30:00Z", nil},
		},
		{
			"typed array coerced element-wise",
			[]int32{1, 2, 3},
			0,
			[]any{int32(1), int32(2), int32(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in, tt.oid))
		})
	}
}

func TestCoerce_Numeric(t *testing.T) {
	tests := []struct {
		name string
		in   pgtype.Numeric
		want any
	}{
		{
			"plain decimal",
			pgtype.Numeric{Int: big.NewInt(314), Exp: -2, Valid: true},
			3.14,
		},
		{
			"integer numeric",
			pgtype.Numeric{Int: big.NewInt(7), Valid: true},
			7.0,
		},
		{
			"NaN becomes string",
			pgtype.Numeric{NaN: true, Valid: true},
			"NaN",
		},
		{
			"positive infinity becomes string",
			pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true},
			"infinity",
		},
		{
			"negative infinity becomes string",
			pgtype.Numeric{InfinityModifier: pgtype.NegativeInfinity, Valid: true},
			"-infinity",
		},
		{
			"null numeric",
			pgtype.Numeric{},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in, pgtype.NumericOID))
		})
	}
}

func TestCoerceRow(t *testing.T) {
	fields := []pgconn.FieldDescription{
		{Name: "id", DataTypeOID: pgtype.Int8OID},
		{Name: "born", DataTypeOID: pgtype.DateOID},
	}
	values := []any{int64(1), time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)}

	row := CoerceRow(fields, values)

	require.Equal(t, []string{"id", "born"}, row.Columns())
	assert.Equal(t, int64(1), row.Value(0))
	assert.Equal(t, "1990-06-01", row.Value(1))
}
