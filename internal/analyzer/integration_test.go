//go:build integration

package analyzer

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

func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("PGLENS_TEST_DSN")
	if dsn == "" {
		t.Skip("PGLENS_TEST_DSN not set")
	}
	return dsn
}

func TestIntegration_Analyze(t *testing.T) {
	reg := registry.New(registry.Config{}, testutil.NewTestLogger(t))
	defer reg.Close()

	ctx := context.Background()
	id, err := reg.Register(ctx, testDSN(t))
	require.NoError(t, err)

	a := New(reg, 30*time.Second, testutil.NewTestLogger(t))

	sql := `SELECT v.kind, MIN(v.d) AS first_day, COUNT(*) AS n
	        FROM (VALUES ('a', '2024-01-01'::date), ('a', '2024-02-01'::date), ('b', '2024-03-01'::date)) AS v(kind, d)
	        GROUP BY v.kind`

	md, err := a.Analyze(ctx, id, sql)
	require.NoError(t, err)
	assert.Empty(t, md.Degraded)

	require.Len(t, md.Fields, 3)
	assert.Equal(t, "kind", md.Fields[0].Name)
	assert.Equal(t, Nominal, md.Fields[0].Type)
	require.NotNil(t, md.Fields[0].Unique)
	assert.Equal(t, int64(2), *md.Fields[0].Unique)

	assert.Equal(t, "first_day", md.Fields[1].Name)
	assert.Equal(t, Temporal, md.Fields[1].Type)
	require.Len(t, md.Fields[1].Range, 2)
	assert.Equal(t, "2024-01-01", md.Fields[1].Range[0])

	assert.Equal(t, Quantitative, md.Fields[2].Type)

	assert.Equal(t, int64(2), md.RowCount)
	assert.Equal(t, []string{"kind"}, md.GroupBy)
}

func TestIntegration_Analyze_TrailingSemicolon(t *testing.T) {
	reg := registry.New(registry.Config{}, testutil.NewTestLogger(t))
	defer reg.Close()

	ctx := context.Background()
	id, err := reg.Register(ctx, testDSN(t))
	require.NoError(t, err)

	a := New(reg, 30*time.Second, testutil.NewTestLogger(t))

	md, err := a.Analyze(ctx, id, "SELECT 1 AS one;")
	require.NoError(t, err)
	assert.Equal(t, int64(1), md.RowCount)
}
