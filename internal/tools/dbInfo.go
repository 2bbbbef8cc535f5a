package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DBInfoInput struct{}

type DBInfoOutput struct {
	DatabaseName string `json:"database_name" jsonschema_description:"Name of the current database"`
	Version      string `json:"version" jsonschema_description:"Database server version"`
	Type         string `json:"type" jsonschema_description:"Database type (postgres or mysql)"`
}

func getDBInfoTool(r *Registry) *ToolDefinition[DBInfoInput, DBInfoOutput] {
	return NewToolDefinition(
		"db_info",
		"Get the connected database's name, server version, and type.",
		func(ctx context.Context, req *mcp.CallToolRequest, input DBInfoInput) (*mcp.CallToolResult, DBInfoOutput, error) {
			return dbInfoHandler(ctx, r)
		},
	)
}

func dbInfoHandler(ctx context.Context, r *Registry) (*mcp.CallToolResult, DBInfoOutput, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, DBInfoOutput{}, err
	}
	defer conn.Close()

	version, err := conn.QueryValue(ctx, conn.Dialect.VersionQuery())
	if err != nil {
		return nil, DBInfoOutput{}, fmt.Errorf("failed to get version: %v", err)
	}

	dbName, err := conn.QueryValue(ctx, conn.Dialect.CurrentDatabaseQuery())
	if err != nil {
		return nil, DBInfoOutput{}, fmt.Errorf("failed to get database name: %v", err)
	}

	output := DBInfoOutput{
		DatabaseName: dbName,
		Version:      version,
		Type:         conn.Dialect.Name(),
	}
	result, err := textResult(output)
	if err != nil {
		return nil, DBInfoOutput{}, err
	}
	return result, output, nil
}
