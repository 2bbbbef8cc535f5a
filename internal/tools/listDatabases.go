package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListDatabasesInput struct{}

type ListDatabasesOutput struct {
	Databases []map[string]any `json:"databases" jsonschema_description:"Databases visible to the connected user"`
}

func getListDatabasesTool(r *Registry) *ToolDefinition[ListDatabasesInput, ListDatabasesOutput] {
	return NewToolDefinition(
		"list_databases",
		"List all databases on the server.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ListDatabasesInput) (*mcp.CallToolResult, ListDatabasesOutput, error) {
			return listDatabasesHandler(ctx, r)
		},
	)
}

func listDatabasesHandler(ctx context.Context, r *Registry) (*mcp.CallToolResult, ListDatabasesOutput, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, ListDatabasesOutput{}, err
	}
	defer conn.Close()

	query, args := conn.Dialect.ListDatabasesQuery()
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, ListDatabasesOutput{}, fmt.Errorf("query error: %v", err)
	}

	result, err := textResult(rows)
	if err != nil {
		return nil, ListDatabasesOutput{}, err
	}
	return result, ListDatabasesOutput{Databases: rows}, nil
}
