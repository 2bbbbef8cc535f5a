package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListTablesInput struct{}

type ListTablesOutput struct {
	Tables []map[string]any `json:"tables" jsonschema_description:"Tables with their name and type"`
}

func getListTablesTool(r *Registry) *ToolDefinition[ListTablesInput, ListTablesOutput] {
	return NewToolDefinition(
		"list_tables",
		"List all tables in the current database with their types.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ListTablesInput) (*mcp.CallToolResult, ListTablesOutput, error) {
			return listTablesHandler(ctx, r)
		},
	)
}

func listTablesHandler(ctx context.Context, r *Registry) (*mcp.CallToolResult, ListTablesOutput, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, ListTablesOutput{}, err
	}
	defer conn.Close()

	query, args := conn.Dialect.ListTablesQuery(conn.Database)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, ListTablesOutput{}, fmt.Errorf("query error: %v", err)
	}

	result, err := textResult(rows)
	if err != nil {
		return nil, ListTablesOutput{}, err
	}
	return result, ListTablesOutput{Tables: rows}, nil
}
