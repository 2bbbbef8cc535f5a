package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johnroshan2255/universal-db-mcp/internal/client"
	"github.com/johnroshan2255/universal-db-mcp/internal/config"
)

// Opener yields one fresh connection per tool invocation. The handler that
// obtained it is responsible for closing it on every exit path.
type Opener func(ctx context.Context) (*client.Conn, error)

type registeredTool interface {
	tool() *mcp.Tool
	register(s *mcp.Server)
	call(ctx context.Context, args map[string]any) *mcp.CallToolResult
}

// Registry owns the tool catalog and the dispatch path shared by the MCP
// server and the one-shot `call` command. Tools are stateless; the only
// thing they share is the opener and the identifier-strictness setting.
type Registry struct {
	open             Opener
	strictIdentifier bool
	defs             map[string]registeredTool
	order            []string
}

// New builds the registry for the given configuration. strictIdentifiers
// enables the opt-in identifier-safety check on interpolated table/column
// names; off by default to preserve the tool's trust-the-operator contract.
func New(cfg *config.Config, strictIdentifiers bool) *Registry {
	return NewWithOpener(func(ctx context.Context) (*client.Conn, error) {
		return client.Open(ctx, cfg)
	}, strictIdentifiers)
}

// NewWithOpener builds the registry around a custom connection opener.
func NewWithOpener(open Opener, strictIdentifiers bool) *Registry {
	r := &Registry{
		open:             open,
		strictIdentifier: strictIdentifiers,
		defs:             make(map[string]registeredTool),
	}

	r.add(getQueryTool(r))
	r.add(getListTablesTool(r))
	r.add(getDescribeTableTool(r))
	r.add(getListDatabasesTool(r))
	r.add(getTableRowCountTool(r))
	r.add(getSearchTableTool(r))
	r.add(getDBInfoTool(r))
	r.add(getExplainQueryTool(r))

	return r
}

func (r *Registry) add(td registeredTool) {
	name := td.tool().Name
	r.defs[name] = td
	r.order = append(r.order, name)
}

// ToolNames returns the catalog's tool names in registration order.
func (r *Registry) ToolNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// RegisterAll adds every tool to the MCP server.
func (r *Registry) RegisterAll(s *mcp.Server) {
	for _, name := range r.order {
		r.defs[name].register(s)
	}
}

// Call invokes a tool by name with a loosely-typed argument bag. An unknown
// name yields an error envelope without opening a connection.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	td, ok := r.defs[name]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}
	return td.call(ctx, args)
}
