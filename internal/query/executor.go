// Package query executes SQL against registered connections and renders
// results as JSON-safe rows. Parameters are always bound by placeholder;
// statement text is never interpolated with caller values.
package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leapstack-labs/pglens/internal/registry"
)

// maxSQLInError caps how much statement text a QueryError carries.
const maxSQLInError = 200

// Executor runs statements against connections acquired from the registry.
type Executor struct {
	reg     *registry.Registry
	timeout time.Duration
	logger  *slog.Logger
}

// NewExecutor creates an executor. timeout bounds each statement's execution;
// zero means no budget. If logger is nil, a discard logger is used.
func NewExecutor(reg *registry.Registry, timeout time.Duration, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{reg: reg, timeout: timeout, logger: logger}
}

// Timeout returns the configured statement execution budget.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Execute runs a parameterized statement against the connection id and
// returns the coerced rows in database result order. The acquired connection
// is released on every exit path. Identifiers that must appear in the
// statement text itself are the caller's responsibility to quote.
func (e *Executor) Execute(ctx context.Context, id, sql string, params []any) ([]Row, error) {
	conn, err := e.reg.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	execCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rows, err := conn.Query(execCtx, sql, params...)
	if err != nil {
		return nil, e.wrapError(ctx, err, sql)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, e.wrapError(ctx, err, sql)
		}
		out = append(out, CoerceRow(fields, values))
	}
	if err := rows.Err(); err != nil {
		return nil, e.wrapError(ctx, err, sql)
	}

	e.logger.Debug("executed query",
		slog.String("id", id),
		slog.Int("rows", len(out)))
	return out, nil
}

// wrapError converts driver failures into the executor's typed errors.
func (e *Executor) wrapError(ctx context.Context, err error, sql string) error {
	return WrapError(ctx, err, sql, e.timeout)
}

// WrapError converts a driver failure into this package's typed errors so no
// raw pgx error type crosses the boundary. ctx is the caller's context, used
// to tell a statement timeout apart from an upstream cancellation.
func WrapError(ctx context.Context, err error, sql string, timeout time.Duration) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &QueryError{
			Message: pgErr.Message,
			Code:    pgErr.Code,
			SQL:     truncateSQL(sql),
			Err:     err,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return &QueryTimeoutError{Timeout: timeout}
	}
	if ctx.Err() != nil {
		return fmt.Errorf("query canceled: %w", ctx.Err())
	}
	return &QueryError{Message: err.Error(), SQL: truncateSQL(sql), Err: err}
}

// truncateSQL shortens statement text for inclusion in error values.
func truncateSQL(sql string) string {
	if len(sql) <= maxSQLInError {
		return sql
	}
	return sql[:maxSQLInError] + "..."
}
