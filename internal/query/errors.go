package query

import (
	"fmt"
	"time"
)

// QueryError reports a failed statement execution. Code carries the
// PostgreSQL error code when the server produced one. SQL holds a truncated
// copy of the statement text with bind parameters never included.
type QueryError struct {
	Message string
	Code    string
	SQL     string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("query failed (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("query failed: %s", e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// QueryTimeoutError is returned when a statement exceeded its execution time
// budget. The underlying connection is returned to the pool; pgx closes a
// connection whose statement was interrupted, so it is never reused dirty.
type QueryTimeoutError struct {
	Timeout time.Duration
}

func (e *QueryTimeoutError) Error() string {
	return fmt.Sprintf("statement exceeded execution timeout of %s", e.Timeout)
}
