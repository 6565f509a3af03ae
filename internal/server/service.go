package server

import (
	"context"

	"github.com/leapstack-labs/pglens/internal/analyzer"
	"github.com/leapstack-labs/pglens/internal/query"
	"github.com/leapstack-labs/pglens/internal/registry"
)

// Registrar manages connection registrations.
type Registrar interface {
	Register(ctx context.Context, connString string) (string, error)
	Disconnect(id string) error
	Status() []registry.ConnectionStatus
}

// Executor runs SQL against a registered connection.
type Executor interface {
	Execute(ctx context.Context, id, sql string, params []any) ([]query.Row, error)
}

// Analyzer produces query metadata descriptors.
type Analyzer interface {
	Analyze(ctx context.Context, id, sql string) (*analyzer.Metadata, error)
}

// Introspector answers structural questions about a database.
type Introspector interface {
	Database(ctx context.Context, id string) (any, error)
	Schema(ctx context.Context, id, schema string) (any, error)
	Table(ctx context.Context, id, schema, table string) (any, error)
	View(ctx context.Context, id, schema, view string) (any, error)
}

// Service bundles the operations the front-end exposes. It is constructed at
// process start and injected into the server; handlers hold no global state.
type Service struct {
	Registrar    Registrar
	Executor     Executor
	Analyzer     Analyzer
	Introspector Introspector
}
