package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johnroshan2255/universal-db-mcp/internal/dialect"
)

type TableRowCountInput struct {
	Table string `json:"table" jsonschema:"required" jsonschema_description:"Name of the table to count rows in"`
}

type TableRowCountOutput struct {
	Count int64 `json:"count" jsonschema_description:"Number of rows in the table"`
}

func getTableRowCountTool(r *Registry) *ToolDefinition[TableRowCountInput, TableRowCountOutput] {
	return NewToolDefinition(
		"table_row_count",
		"Count the rows in a table.",
		func(ctx context.Context, req *mcp.CallToolRequest, input TableRowCountInput) (*mcp.CallToolResult, TableRowCountOutput, error) {
			return tableRowCountHandler(ctx, input, r)
		},
	).WithRequired("table")
}

func tableRowCountHandler(ctx context.Context, input TableRowCountInput, r *Registry) (*mcp.CallToolResult, TableRowCountOutput, error) {
	if r.strictIdentifier {
		if err := dialect.ValidateIdentifier(input.Table); err != nil {
			return nil, TableRowCountOutput{}, err
		}
	}

	conn, err := r.open(ctx)
	if err != nil {
		return nil, TableRowCountOutput{}, err
	}
	defer conn.Close()

	// The table name is interpolated, not bound: identifiers cannot be
	// bound as ordinary parameters in either driver.
	count, err := conn.QueryCount(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", input.Table))
	if err != nil {
		return nil, TableRowCountOutput{}, fmt.Errorf("query error: %v", err)
	}

	output := TableRowCountOutput{Count: count}
	result, err := textResult(output)
	if err != nil {
		return nil, TableRowCountOutput{}, err
	}
	return result, output, nil
}
