package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare statement", "SELECT 1", "SELECT 1"},
		{"trailing semicolon", "SELECT 1;", "SELECT 1"},
		{"trailing semicolon and whitespace", "  SELECT 1 ;  \n", "SELECT 1"},
		{"semicolon in string", "SELECT 'a;b'", "SELECT 'a;b'"},
		{"semicolon in quoted identifier", `SELECT "a;b" FROM t`, `SELECT "a;b" FROM t`},
		{"semicolon in line comment", "SELECT 1 -- not; a terminator", "SELECT 1"},
		{"semicolon in block comment", "SELECT /* x; y */ 1", "SELECT /* x; y */ 1"},
		{"semicolon in dollar quote", "SELECT $$a;b$$", "SELECT $$a;b$$"},
		{"comment after terminator", "SELECT 1; -- done", "SELECT 1"},
		{"trailing line comment stripped", "SELECT 1 -- note", "SELECT 1"},
		{"trailing block comment stripped", "SELECT 1 /* tail */", "SELECT 1"},
		{"line comment before terminator", "SELECT 1 -- note\n;", "SELECT 1"},
		{"interior comment kept", "SELECT /* keep */ 1 FROM t", "SELECT /* keep */ 1 FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_MultiStatement(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"two selects", "SELECT 1; SELECT 2"},
		{"drop after select", "SELECT 1; DROP TABLE users"},
		{"second statement after newline", "SELECT 1;\nSELECT 2;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			var multiErr *MultiStatementError
			require.ErrorAs(t, err, &multiErr)
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", ";", " ; "} {
		_, err := Normalize(input)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", input)
	}
}

func TestGroupByColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"no group by",
			"SELECT * FROM orders",
			[]string{},
		},
		{
			"single column",
			"SELECT region, COUNT(*) FROM orders GROUP BY region",
			[]string{"region"},
		},
		{
			"multiple columns",
			"SELECT a, b, COUNT(*) FROM t GROUP BY a, b",
			[]string{"a", "b"},
		},
		{
			"qualified names keep last part",
			"SELECT o.region FROM orders o GROUP BY o.region, public.orders.status",
			[]string{"region", "status"},
		},
		{
			"unquoted folds to lowercase",
			"SELECT Region FROM orders GROUP BY Region",
			[]string{"region"},
		},
		{
			"quoted keeps case",
			`SELECT "Region" FROM orders GROUP BY "Region"`,
			[]string{"Region"},
		},
		{
			"positional entries skipped",
			"SELECT region, status FROM orders GROUP BY 1, status",
			[]string{"status"},
		},
		{
			"expression entries skipped",
			"SELECT date_trunc('day', ts), COUNT(*) FROM e GROUP BY date_trunc('day', ts), region",
			[]string{"region"},
		},
		{
			"terminated by having",
			"SELECT a FROM t GROUP BY a HAVING COUNT(*) > 1",
			[]string{"a"},
		},
		{
			"terminated by order by",
			"SELECT a FROM t GROUP BY a ORDER BY a",
			[]string{"a"},
		},
		{
			"terminated by limit",
			"SELECT a FROM t GROUP BY a LIMIT 10",
			[]string{"a"},
		},
		{
			"group by in subquery ignored",
			"SELECT * FROM (SELECT a FROM t GROUP BY a) sub",
			[]string{},
		},
		{
			"with CTE",
			"WITH c AS (SELECT a FROM t GROUP BY a) SELECT b FROM c GROUP BY b",
			[]string{"b"},
		},
		{
			"commas inside parenthesized entries",
			"SELECT a FROM t GROUP BY GROUPING SETS ((a, b), (a)), c",
			[]string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GroupByColumns(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupByColumns_RejectsNonSelect(t *testing.T) {
	for _, input := range []string{
		"INSERT INTO t VALUES (1)",
		"UPDATE t SET a = 1",
		"DELETE FROM t",
	} {
		cols, err := GroupByColumns(input)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", input)
		assert.NotNil(t, cols)
	}
}
