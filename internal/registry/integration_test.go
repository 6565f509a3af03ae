//go:build integration

package registry

import (
	"context"
	"os"
	"testing"
	"time"

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

func TestIntegration_RegisterAndDisconnect(t *testing.T) {
	reg := New(Config{}, testutil.NewTestLogger(t))
	defer reg.Close()

	ctx := context.Background()
	id, err := reg.Register(ctx, testDSN(t))
	require.NoError(t, err)
	assert.Contains(t, reg.IDs(), id)

	require.NoError(t, reg.Disconnect(id))

	_, err = reg.Acquire(ctx, id)
	var unknownErr *UnknownConnectionError
	require.ErrorAs(t, err, &unknownErr)
}

// With MaxConns pool slots all held, the next Acquire must block and then
// fail with PoolTimeoutError once the acquisition timeout elapses. Releasing
// a slot makes acquisition succeed again.
func TestIntegration_PoolExhaustion(t *testing.T) {
	reg := New(Config{
		MinConns:       1,
		MaxConns:       1,
		AcquireTimeout: 300 * time.Millisecond,
	}, testutil.NewTestLogger(t))
	defer reg.Close()

	ctx := context.Background()
	id, err := reg.Register(ctx, testDSN(t))
	require.NoError(t, err)

	held, err := reg.Acquire(ctx, id)
	require.NoError(t, err)

	start := time.Now()
	_, err = reg.Acquire(ctx, id)
	var poolErr *PoolTimeoutError
	require.ErrorAs(t, err, &poolErr)
	assert.Equal(t, id, poolErr.ID)
	assert.Equal(t, 300*time.Millisecond, poolErr.Timeout)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)

	held.Release()

	conn, err := reg.Acquire(ctx, id)
	require.NoError(t, err)
	conn.Release()
}
