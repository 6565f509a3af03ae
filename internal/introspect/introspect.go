// Package introspect returns hierarchical JSON descriptions of a database's
// structure. Each accessor delegates one canned, externally-authored SQL
// statement (embedded from sql/) to the query executor; the statements are
// written to yield a single row with a single JSON column.
package introspect

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/pglens/internal/query"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Runner executes a statement against a registered connection. Satisfied by
// *query.Executor.
type Runner interface {
	Execute(ctx context.Context, id, sql string, params []any) ([]query.Row, error)
}

var _ Runner = (*query.Executor)(nil)

// Introspector answers structural questions about registered databases.
type Introspector struct {
	exec   Runner
	logger *slog.Logger
}

// New creates an introspector.
// If logger is nil, a discard logger is used.
func New(exec Runner, logger *slog.Logger) *Introspector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Introspector{exec: exec, logger: logger}
}

// Database returns the complete structure of the database behind id:
// all user schemas with their tables, columns, foreign keys and indexes.
func (i *Introspector) Database(ctx context.Context, id string) (any, error) {
	return i.run(ctx, id, "get_database.sql", nil,
		map[string]any{"schemas": []any{}})
}

// Schema returns the structure of one schema.
func (i *Introspector) Schema(ctx context.Context, id, schema string) (any, error) {
	return i.run(ctx, id, "get_schema.sql", []any{schema},
		map[string]any{"schema": map[string]any{}})
}

// Table returns the detailed structure of one table.
func (i *Introspector) Table(ctx context.Context, id, schema, table string) (any, error) {
	return i.run(ctx, id, "get_table.sql", []any{schema, table},
		map[string]any{"table": map[string]any{}})
}

// View returns the detailed structure of one materialized view.
func (i *Introspector) View(ctx context.Context, id, schema, view string) (any, error) {
	return i.run(ctx, id, "get_view.sql", []any{schema, view},
		map[string]any{"materialized_view": map[string]any{}})
}

// run executes one canned statement and unwraps its single JSON cell. A
// zero-row result (object not found, or an empty database) produces the
// well-formed empty document instead of an error.
func (i *Introspector) run(ctx context.Context, id, file string, params []any, empty any) (any, error) {
	stmt, err := sqlFiles.ReadFile("sql/" + file)
	if err != nil {
		return nil, fmt.Errorf("missing introspection statement %s: %w", file, err)
	}

	rows, err := i.exec.Execute(ctx, id, string(stmt), params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Len() == 0 {
		i.logger.Debug("introspection target not found", slog.String("statement", file))
		return empty, nil
	}
	doc := rows[0].Value(0)
	if doc == nil {
		return empty, nil
	}
	return doc, nil
}
