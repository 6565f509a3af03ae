// Package analyzer characterizes a single SELECT statement for downstream
// visualization decisions: its GROUP BY columns, each result column's logical
// type, distinct counts for nominal columns, value ranges for temporal
// columns, and the result row count.
//
// The pipeline runs in stages. Only statement normalization and the column
// description against the live connection are fatal; every other stage
// degrades the result and records why instead of failing the analysis.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leapstack-labs/pglens/internal/query"
	"github.com/leapstack-labs/pglens/internal/registry"
	"github.com/leapstack-labs/pglens/internal/sqlparse"
)

// Analyzer builds query metadata descriptors.
type Analyzer struct {
	reg     *registry.Registry
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an analyzer. timeout bounds each supplementary statement; zero
// means no budget. If logger is nil, a discard logger is used.
func New(reg *registry.Registry, timeout time.Duration, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{reg: reg, timeout: timeout, logger: logger}
}

// Analyze runs the staged pipeline for one SELECT-shaped statement. All
// supplementary statements execute on the same acquired connection as the
// column description; the connection is released when the analysis finishes
// or the fatal stage fails.
func (a *Analyzer) Analyze(ctx context.Context, id, sql string) (*Metadata, error) {
	// Stage 1: normalize. Multi-statement input is rejected outright since
	// later stages wrap the statement as a subquery.
	normalized, err := sqlparse.Normalize(sql)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		Fields:  []ColumnMetadata{},
		GroupBy: []string{},
	}

	// Stage 2: extract GROUP BY columns. Never fatal.
	cols, err := sqlparse.GroupByColumns(normalized)
	md.GroupBy = cols
	if err != nil {
		a.logger.Warn("group-by extraction failed", slog.String("error", err.Error()))
		md.Degraded = append(md.Degraded, StageFailure{Stage: StageParse, Reason: err.Error()})
	}

	conn, err := a.reg.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	// Stage 3: describe the statement. Fatal, since the remaining stages
	// need the column list.
	fields, err := a.describe(ctx, conn, normalized)
	if err != nil {
		return nil, err
	}
	for _, fd := range fields {
		md.Fields = append(md.Fields, ColumnMetadata{
			Name: fd.Name,
			Type: logicalTypeForOID(fd.DataTypeOID),
		})
	}

	// Stage 4: per-column stats. Each failure is isolated to its column.
	for i := range md.Fields {
		col := &md.Fields[i]
		switch col.Type {
		case Nominal:
			a.attachUnique(ctx, conn, normalized, col, md)
		case Temporal:
			a.attachRange(ctx, conn, normalized, col, md)
		}
	}

	// Stage 5: row count. Leaves the zero default on failure.
	stmt := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS subq", normalized)
	var n int64
	if err := a.scanOne(ctx, conn, stmt, &n); err != nil {
		a.logger.Warn("row count failed", slog.String("error", err.Error()))
		md.Degraded = append(md.Degraded, StageFailure{Stage: StageRowCount, Reason: err.Error()})
	} else {
		md.RowCount = n
	}

	return md, nil
}

// describe prepares the statement to obtain the ordered column list without
// materializing rows.
func (a *Analyzer) describe(ctx context.Context, conn *pgxpool.Conn, sql string) ([]pgconn.FieldDescription, error) {
	descCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		descCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	sd, err := conn.Conn().Prepare(descCtx, "", sql)
	if err != nil {
		return nil, query.WrapError(ctx, err, sql, a.timeout)
	}
	return sd.Fields, nil
}

// attachUnique runs the distinct count for a nominal column.
func (a *Analyzer) attachUnique(ctx context.Context, conn *pgxpool.Conn, sql string, col *ColumnMetadata, md *Metadata) {
	stmt := fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM (%s) AS subq", quoteIdent(col.Name), sql)
	var n int64
	if err := a.scanOne(ctx, conn, stmt, &n); err != nil {
		a.logger.Warn("distinct count failed",
			slog.String("column", col.Name),
			slog.String("error", err.Error()))
		md.Degraded = append(md.Degraded, StageFailure{Stage: StageStats, Column: col.Name, Reason: err.Error()})
		return
	}
	col.Unique = &n
}

// attachRange runs the min/max query for a temporal column.
func (a *Analyzer) attachRange(ctx context.Context, conn *pgxpool.Conn, sql string, col *ColumnMetadata, md *Metadata) {
	stmt := fmt.Sprintf("SELECT MIN(%s), MAX(%s) FROM (%s) AS subq", quoteIdent(col.Name), quoteIdent(col.Name), sql)

	queryCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	rows, err := conn.Query(queryCtx, stmt)
	if err == nil {
		defer rows.Close()
		fields := rows.FieldDescriptions()
		if rows.Next() {
			var values []any
			if values, err = rows.Values(); err == nil && len(values) == 2 {
				col.Range = []any{
					query.Coerce(values[0], fields[0].DataTypeOID),
					query.Coerce(values[1], fields[1].DataTypeOID),
				}
			}
		}
		if err == nil {
			err = rows.Err()
		}
	}
	if err != nil {
		a.logger.Warn("range stat failed",
			slog.String("column", col.Name),
			slog.String("error", err.Error()))
		md.Degraded = append(md.Degraded, StageFailure{Stage: StageStats, Column: col.Name, Reason: err.Error()})
	}
}

// scanOne runs a single-value statement on the shared connection.
func (a *Analyzer) scanOne(ctx context.Context, conn *pgxpool.Conn, stmt string, dst any) error {
	queryCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return conn.QueryRow(queryCtx, stmt).Scan(dst)
}

// quoteIdent quotes an identifier for inclusion in statement text.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
