//go:build integration

package query

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/leapstack-labs/pglens/internal/registry"
	"github.com/leapstack-labs/pglens/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDSN returns the database to run integration tests against, or skips.
func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("PGLENS_TEST_DSN")
	if dsn == "" {
		t.Skip("PGLENS_TEST_DSN not set")
	}
	return dsn
}

func TestIntegration_ExecuteRoundTrip(t *testing.T) {
	reg := registry.New(registry.Config{}, testutil.NewTestLogger(t))
	defer reg.Close()

	ctx := context.Background()
	id, err := reg.Register(ctx, testDSN(t))
	require.NoError(t, err)

	exec := NewExecutor(reg, 30*time.Second, testutil.NewTestLogger(t))

	rows, err := exec.Execute(ctx, id,
		"SELECT $1::int AS n, $2::text AS s, now() AS ts, '2024-01-02'::date AS d", []any{42, "hi"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.Equal(t, []string{"n", "s", "ts", "d"}, rows[0].Columns())
	assert.Equal(t, int32(42), rows[0].Value(0))
	assert.Equal(t, "hi", rows[0].Value(1))
	assert.IsType(t, "", rows[0].Value(2), "timestamptz coerces to string")
	assert.Equal(t, "2024-01-02", rows[0].Value(3))
}

func TestIntegration_ServerError(t *testing.T) {
	reg := registry.New(registry.Config{}, testutil.NewTestLogger(t))
	defer reg.Close()

	ctx := context.Background()
	id, err := reg.Register(ctx, testDSN(t))
	require.NoError(t, err)

	exec := NewExecutor(reg, 30*time.Second, testutil.NewTestLogger(t))

	_, err = exec.Execute(ctx, id, "SELECT * FROM table_that_does_not_exist", nil)

	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "42P01", queryErr.Code)
}

func TestIntegration_StatementTimeout(t *testing.T) {
	reg := registry.New(registry.Config{}, testutil.NewTestLogger(t))
	defer reg.Close()

	ctx := context.Background()
	id, err := reg.Register(ctx, testDSN(t))
	require.NoError(t, err)

	exec := NewExecutor(reg, 200*time.Millisecond, testutil.NewTestLogger(t))

	_, err = exec.Execute(ctx, id, "SELECT pg_sleep(5)", nil)

	var timeoutErr *QueryTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
}
