package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type QueryInput struct {
	SQL string `json:"sql" jsonschema:"required" jsonschema_description:"SQL query to execute verbatim"`
}

type QueryOutput struct {
	RowCount int              `json:"rowCount" jsonschema_description:"Number of rows returned"`
	Rows     []map[string]any `json:"rows" jsonschema_description:"Query results"`
}

func getQueryTool(r *Registry) *ToolDefinition[QueryInput, QueryOutput] {
	return NewToolDefinition(
		"query",
		"Execute a SQL query against the database. The statement runs verbatim with no parameters and no statement-type restriction.",
		func(ctx context.Context, req *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
			return queryHandler(ctx, input, r)
		},
	).WithRequired("sql")
}

func queryHandler(ctx context.Context, input QueryInput, r *Registry) (*mcp.CallToolResult, QueryOutput, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	defer conn.Close()

	rows, err := conn.Query(ctx, input.SQL)
	if err != nil {
		return nil, QueryOutput{}, fmt.Errorf("query error: %v", err)
	}

	output := QueryOutput{RowCount: len(rows), Rows: rows}
	result, err := textResult(output)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	return result, output, nil
}
