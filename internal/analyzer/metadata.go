package analyzer

import "github.com/jackc/pgx/v5/pgtype"

// LogicalType is a coarse classification of a column's native type for
// visualization purposes.
type LogicalType string

const (
	Quantitative LogicalType = "quantitative"
	Temporal     LogicalType = "temporal"
	Nominal      LogicalType = "nominal"
)

// ColumnMetadata describes one result column of the analyzed query.
type ColumnMetadata struct {
	Name string      `json:"name"`
	Type LogicalType `json:"type"`

	// Unique is the distinct-value count, attached to nominal columns.
	Unique *int64 `json:"unique,omitempty"`

	// Range is the [min, max] pair, attached to temporal columns. Values are
	// ISO-8601 strings after coercion.
	Range []any `json:"range,omitempty"`
}

// Stage names for degraded sub-stages.
const (
	StageParse    = "parse"
	StageStats    = "stats"
	StageRowCount = "rowcount"
)

// StageFailure records a non-fatal sub-stage failure. The analysis result is
// still usable; the named stage's contribution is simply missing.
type StageFailure struct {
	Stage  string
	Column string // set for per-column stat failures
	Reason string
}

// Metadata is the analysis result for a single SELECT statement.
type Metadata struct {
	Fields   []ColumnMetadata `json:"fields"`
	RowCount int64            `json:"rowCount"`
	GroupBy  []string         `json:"groupBy"`

	// Degraded lists sub-stages that failed non-fatally. Not part of the
	// serialized document.
	Degraded []StageFailure `json:"-"`
}

// logicalTypeForOID classifies a PostgreSQL type OID.
func logicalTypeForOID(oid uint32) LogicalType {
	switch oid {
	case pgtype.Int2OID, pgtype.Int4OID, pgtype.Int8OID,
		pgtype.Float4OID, pgtype.Float8OID, pgtype.NumericOID:
		return Quantitative
	case pgtype.DateOID, pgtype.TimestampOID, pgtype.TimestamptzOID:
		return Temporal
	default:
		return Nominal
	}
}
