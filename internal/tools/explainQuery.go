package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ExplainQueryInput struct {
	SQL string `json:"sql" jsonschema:"required" jsonschema_description:"SQL statement to explain"`
}

type ExplainQueryOutput struct {
	Plan []map[string]any `json:"plan" jsonschema_description:"Execution plan rows"`
}

func getExplainQueryTool(r *Registry) *ToolDefinition[ExplainQueryInput, ExplainQueryOutput] {
	return NewToolDefinition(
		"explain_query",
		"Get the execution plan for a SQL statement.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ExplainQueryInput) (*mcp.CallToolResult, ExplainQueryOutput, error) {
			return explainQueryHandler(ctx, input, r)
		},
	).WithRequired("sql")
}

func explainQueryHandler(ctx context.Context, input ExplainQueryInput, r *Registry) (*mcp.CallToolResult, ExplainQueryOutput, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, ExplainQueryOutput{}, err
	}
	defer conn.Close()

	stmt := strings.TrimSpace(input.SQL)
	// Strip a leading EXPLAIN keyword so the dialect wrapper does not
	// double-wrap it. The trailing space keeps identifiers that merely
	// start with "explain" intact.
	if strings.HasPrefix(strings.ToLower(stmt), "explain ") {
		stmt = strings.TrimSpace(stmt[len("explain "):])
	}

	rows, err := conn.Query(ctx, conn.Dialect.ExplainQuery(stmt))
	if err != nil {
		return nil, ExplainQueryOutput{}, fmt.Errorf("failed to explain query: %v", err)
	}

	result, err := textResult(rows)
	if err != nil {
		return nil, ExplainQueryOutput{}, err
	}
	return result, ExplainQueryOutput{Plan: rows}, nil
}
