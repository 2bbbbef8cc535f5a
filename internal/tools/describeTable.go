package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DescribeTableInput struct {
	Table string `json:"table" jsonschema:"required" jsonschema_description:"Name of the table to describe"`
}

type DescribeTableOutput struct {
	Columns []map[string]any `json:"columns" jsonschema_description:"Column metadata ordered by ordinal position"`
}

func getDescribeTableTool(r *Registry) *ToolDefinition[DescribeTableInput, DescribeTableOutput] {
	return NewToolDefinition(
		"describe_table",
		"Get the column layout of a table: name, data type, max length, nullability, and default.",
		func(ctx context.Context, req *mcp.CallToolRequest, input DescribeTableInput) (*mcp.CallToolResult, DescribeTableOutput, error) {
			return describeTableHandler(ctx, input, r)
		},
	).WithRequired("table")
}

func describeTableHandler(ctx context.Context, input DescribeTableInput, r *Registry) (*mcp.CallToolResult, DescribeTableOutput, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, DescribeTableOutput{}, err
	}
	defer conn.Close()

	// No existence check up front: an unknown table comes back as an empty
	// column list, matching the catalog query's own behavior.
	query, args := conn.Dialect.DescribeTableQuery(conn.Database, input.Table)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, DescribeTableOutput{}, fmt.Errorf("query error: %v", err)
	}

	result, err := textResult(rows)
	if err != nil {
		return nil, DescribeTableOutput{}, err
	}
	return result, DescribeTableOutput{Columns: rows}, nil
}
