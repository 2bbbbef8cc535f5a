package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johnroshan2255/universal-db-mcp/internal/dialect"
)

type SearchTableInput struct {
	Table  string `json:"table" jsonschema:"required" jsonschema_description:"Name of the table to search"`
	Column string `json:"column" jsonschema:"required" jsonschema_description:"Column to match against"`
	Value  string `json:"value" jsonschema:"required" jsonschema_description:"Substring to search for"`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Maximum number of rows to return (default 100)"`
}

type SearchTableOutput struct {
	MatchCount int              `json:"matchCount" jsonschema_description:"Number of matching rows returned"`
	Rows       []map[string]any `json:"rows" jsonschema_description:"Matching rows"`
}

func getSearchTableTool(r *Registry) *ToolDefinition[SearchTableInput, SearchTableOutput] {
	return NewToolDefinition(
		"search_table",
		"Search a table for rows where a column contains a value. Case-insensitive on PostgreSQL; MySQL follows the column's collation.",
		func(ctx context.Context, req *mcp.CallToolRequest, input SearchTableInput) (*mcp.CallToolResult, SearchTableOutput, error) {
			return searchTableHandler(ctx, input, r)
		},
	).WithRequired("table", "column", "value")
}

func searchTableHandler(ctx context.Context, input SearchTableInput, r *Registry) (*mcp.CallToolResult, SearchTableOutput, error) {
	if r.strictIdentifier {
		if err := dialect.ValidateIdentifier(input.Table); err != nil {
			return nil, SearchTableOutput{}, err
		}
		if err := dialect.ValidateIdentifier(input.Column); err != nil {
			return nil, SearchTableOutput{}, err
		}
	}

	conn, err := r.open(ctx)
	if err != nil {
		return nil, SearchTableOutput{}, err
	}
	defer conn.Close()

	query, args := conn.Dialect.SearchQuery(input.Table, input.Column, input.Value, input.Limit)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, SearchTableOutput{}, fmt.Errorf("query error: %v", err)
	}

	output := SearchTableOutput{MatchCount: len(rows), Rows: rows}
	result, err := textResult(output)
	if err != nil {
		return nil, SearchTableOutput{}, err
	}
	return result, output, nil
}
