package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johnroshan2255/universal-db-mcp/internal/logger"
)

// ToolDefinition pairs a tool's metadata with its typed handler. The
// registration wrapper converts handler errors into error-flagged envelopes,
// so no runtime failure ever escapes to the transport as a protocol error.
type ToolDefinition[TInput, TOutput any] struct {
	Tool     *mcp.Tool
	Required []string
	Handler  func(ctx context.Context, req *mcp.CallToolRequest, input TInput) (*mcp.CallToolResult, TOutput, error)
}

func NewToolDefinition[TInput, TOutput any](
	name, description string,
	handler func(ctx context.Context, req *mcp.CallToolRequest, input TInput) (*mcp.CallToolResult, TOutput, error),
) *ToolDefinition[TInput, TOutput] {
	return &ToolDefinition[TInput, TOutput]{
		Tool: &mcp.Tool{
			Name:        name,
			Description: description,
		},
		Handler: handler,
	}
}

// WithRequired names the arguments the loose-map dispatch path must see
// before the handler runs. The MCP registration path enforces the same set
// through the generated JSON schema.
func (td *ToolDefinition[TInput, TOutput]) WithRequired(names ...string) *ToolDefinition[TInput, TOutput] {
	td.Required = names
	return td
}

func (td *ToolDefinition[TInput, TOutput]) tool() *mcp.Tool { return td.Tool }

func (td *ToolDefinition[TInput, TOutput]) register(s *mcp.Server) {
	mcp.AddTool(s, td.Tool, func(ctx context.Context, req *mcp.CallToolRequest, input TInput) (*mcp.CallToolResult, TOutput, error) {
		result, output, err := td.Handler(ctx, req, input)
		logger.LogToolCall(td.Tool.Name, err)
		if err != nil {
			var zero TOutput
			return errorResult(err.Error()), zero, nil
		}
		return result, output, nil
	})
}

// call dispatches a loosely-typed argument bag to the handler: required
// arguments are checked for presence, then the bag is decoded into the
// tool's input struct. Every failure becomes an error envelope.
func (td *ToolDefinition[TInput, TOutput]) call(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	for _, name := range td.Required {
		if _, ok := args[name]; !ok {
			return errorResult(fmt.Sprintf("missing required argument: %s", name))
		}
	}

	var input TInput
	if len(args) > 0 {
		data, err := json.Marshal(args)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err))
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err))
		}
	}

	result, _, err := td.Handler(ctx, nil, input)
	logger.LogToolCall(td.Tool.Name, err)
	if err != nil {
		return errorResult(err.Error())
	}
	return result
}

// textResult serializes v as pretty-printed JSON wrapped in a text content
// envelope.
func textResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("JSON marshal error: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
