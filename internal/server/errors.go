package server

import (
	"errors"
	"net/http"

	"github.com/leapstack-labs/pglens/internal/query"
	"github.com/leapstack-labs/pglens/internal/registry"
	"github.com/leapstack-labs/pglens/internal/sqlparse"
)

// statusFor maps a service error onto an HTTP status code. Unrecognized errors
// are treated as internal failures.
func statusFor(err error) int {
	var (
		unknownConn *registry.UnknownConnectionError
		poolTimeout *registry.PoolTimeoutError
		connErr     *registry.ConnectionError
		multiStmt   *sqlparse.MultiStatementError
		parseErr    *sqlparse.ParseError
		queryErr    *query.QueryError
		timeoutErr  *query.QueryTimeoutError
	)
	switch {
	case errors.As(err, &unknownConn):
		return http.StatusNotFound
	case errors.As(err, &poolTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, registry.ErrRegistryClosed):
		return http.StatusServiceUnavailable
	case errors.As(err, &multiStmt):
		return http.StatusUnprocessableEntity
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &connErr):
		return http.StatusBadRequest
	case errors.As(err, &queryErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
