package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
	"github.com/johnroshan2255/universal-db-mcp/internal/logger"
	"github.com/johnroshan2255/universal-db-mcp/internal/tools"
)

type Options struct {
	Version string
	Config  *config.Config
	// StrictIdentifiers enables the opt-in check on interpolated table and
	// column names.
	StrictIdentifiers bool
}

// New builds the MCP server with the full tool catalog registered. No
// connection is opened at startup; each tool invocation opens and closes
// its own.
func New(opts Options) *mcp.Server {
	impl := &mcp.Implementation{Name: "universal-db-mcp", Version: opts.Version}
	s := mcp.NewServer(impl, nil)

	registry := tools.New(opts.Config, opts.StrictIdentifiers)
	registry.RegisterAll(s)

	return s
}

// RunStdio serves MCP over stdin/stdout until EOF or an interrupt signal.
func RunStdio(opts Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := New(opts)

	logger.Info("server running", map[string]interface{}{
		"type":    string(opts.Config.Type),
		"version": opts.Version,
	})

	return s.Run(ctx, &mcp.StdioTransport{})
}
