package tools

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnroshan2255/universal-db-mcp/internal/client"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

// countingOpener fails every open but records how often it was asked.
type countingOpener struct {
	opens int
}

func (o *countingOpener) open(ctx context.Context) (*client.Conn, error) {
	o.opens++
	return nil, fmt.Errorf("opener should not have been called")
}

func TestRegistryCatalog(t *testing.T) {
	opener := &countingOpener{}
	r := NewWithOpener(opener.open, false)

	assert.Equal(t, []string{
		"query",
		"list_tables",
		"describe_table",
		"list_databases",
		"table_row_count",
		"search_table",
		"db_info",
		"explain_query",
	}, r.ToolNames())
	assert.Zero(t, opener.opens, "building the catalog opens no connections")
}

func TestRegistryCall_UnknownTool(t *testing.T) {
	opener := &countingOpener{}
	r := NewWithOpener(opener.open, false)

	result := r.Call(context.Background(), "drop_everything", nil)

	assert.True(t, result.IsError)
	assert.Equal(t, "Unknown tool: drop_everything", resultText(t, result))
	assert.Zero(t, opener.opens, "unknown tool must not open a connection")
}

func TestRegistryCall_MissingRequiredArgument(t *testing.T) {
	opener := &countingOpener{}
	r := NewWithOpener(opener.open, false)

	tests := []struct {
		tool    string
		args    map[string]any
		missing string
	}{
		{"query", nil, "sql"},
		{"describe_table", map[string]any{}, "table"},
		{"table_row_count", map[string]any{}, "table"},
		{"search_table", map[string]any{"table": "users"}, "column"},
		{"search_table", map[string]any{"table": "users", "column": "email"}, "value"},
	}

	for _, tc := range tests {
		t.Run(tc.tool+"/"+tc.missing, func(t *testing.T) {
			result := r.Call(context.Background(), tc.tool, tc.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), "missing required argument: "+tc.missing)
		})
	}
	assert.Zero(t, opener.opens, "argument validation happens before opening a connection")
}

func TestRegistryCall_OpenerErrorBecomesEnvelope(t *testing.T) {
	r := NewWithOpener(func(ctx context.Context) (*client.Conn, error) {
		return nil, fmt.Errorf("connect postgres: connection refused")
	}, false)

	result := r.Call(context.Background(), "list_tables", nil)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "connection refused")
}
