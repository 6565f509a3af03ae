package server

// Capability describes one operation exposed by the HTTP front-end.
type Capability struct {
	Name    string `json:"name"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
}

// capabilities is the static advertisement of every exposed operation. It is
// served verbatim on GET /capabilities so clients can discover the surface
// without probing.
var capabilities = []Capability{
	{
		Name:    "connect",
		Method:  "POST",
		Path:    "/connect",
		Summary: "Register a PostgreSQL connection string and receive an opaque connection id.",
	},
	{
		Name:    "disconnect",
		Method:  "POST",
		Path:    "/disconnect",
		Summary: "Close a registered connection and release its pool.",
	},
	{
		Name:    "connections",
		Method:  "GET",
		Path:    "/connections",
		Summary: "List registered connections with pool statistics. Never includes credentials.",
	},
	{
		Name:    "query",
		Method:  "POST",
		Path:    "/query",
		Summary: "Execute a read SQL statement with optional positional parameters.",
	},
	{
		Name:    "analyze",
		Method:  "POST",
		Path:    "/analyze",
		Summary: "Describe a query's result shape: logical column types, stats, grouping and row count.",
	},
	{
		Name:    "database",
		Method:  "GET",
		Path:    "/db/{connID}",
		Summary: "Full structure of the database: schemas, tables, columns, foreign keys, indexes.",
	},
	{
		Name:    "schema",
		Method:  "GET",
		Path:    "/db/{connID}/schemas/{schema}",
		Summary: "Structure of one schema.",
	},
	{
		Name:    "table",
		Method:  "GET",
		Path:    "/db/{connID}/schemas/{schema}/tables/{table}",
		Summary: "Detailed structure of one table.",
	},
	{
		Name:    "view",
		Method:  "GET",
		Path:    "/db/{connID}/schemas/{schema}/views/{view}",
		Summary: "Detailed structure of one materialized view.",
	},
}

// Capabilities returns the operations the front-end advertises.
func Capabilities() []Capability {
	return capabilities
}
