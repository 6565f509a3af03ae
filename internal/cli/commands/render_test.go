package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/pglens/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []query.Row {
	return []query.Row{
		query.NewRow([]string{"id", "name"}, []any{int64(1), "ada"}),
		query.NewRow([]string{"id", "name"}, []any{int64(2), "grace, h"}),
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, sampleRows(), "table"))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, nil, "table"))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, sampleRows(), "json"))

	out := buf.String()
	assert.Contains(t, out, `"name": "ada"`)
	idIdx := strings.Index(out, `"id"`)
	nameIdx := strings.Index(out, `"name"`)
	assert.Less(t, idIdx, nameIdx, "column order preserved in JSON")
}

func TestRenderJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, nil, "json"))
	assert.Equal(t, "[]\n", strings.TrimRight(buf.String(), " "))
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, sampleRows(), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name", lines[0])
	assert.Equal(t, "1,ada", lines[1])
	assert.Equal(t, `2,"grace, h"`, lines[2])
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, sampleRows(), "markdown"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| id | name |", lines[0])
	assert.Equal(t, "| --- | --- |", lines[1])
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", formatValue(nil))
	assert.Equal(t, "42", formatValue(42))
	assert.Equal(t, `{"k":"v"}`, formatValue(map[string]any{"k": "v"}))
	assert.Equal(t, `[1,2]`, formatValue([]any{float64(1), float64(2)}))
}

func TestEscapeCSV(t *testing.T) {
	assert.Equal(t, "plain", escapeCSV("plain"))
	assert.Equal(t, `"a,b"`, escapeCSV("a,b"))
	assert.Equal(t, `"say ""hi"""`, escapeCSV(`say "hi"`))
}
