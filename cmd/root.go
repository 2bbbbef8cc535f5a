package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
	"github.com/johnroshan2255/universal-db-mcp/internal/logger"
	"github.com/johnroshan2255/universal-db-mcp/internal/server"
	"github.com/johnroshan2255/universal-db-mcp/internal/tools"
)

const version = "v0.2.0"

var rootCmd = &cobra.Command{
	Use:   "universal-db-mcp",
	Short: "MCP server exposing SQL tools for Postgres/MySQL",
	Long: `A Model Context Protocol (MCP) server that exposes SQL database
operations (query, schema inspection, row counting, pattern search) as
tools for AI clients. Connection settings come from the environment
(DB_TYPE, DATABASE_URL or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)
or from a named entry in connections.json via --connection.`,
}

// Execute runs the CLI. Startup configuration errors are the only fatal
// errors; everything after the server starts becomes a tool error envelope.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("connection", "c", "", "Named connection from connections.json (overrides environment)")
	rootCmd.PersistentFlags().Bool("strict-identifiers", false, "Reject table/column arguments that are not plain SQL identifiers")

	stdioCmd := &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdio (for local MCP clients)",
		RunE:  runStdioServer,
	}
	rootCmd.AddCommand(stdioCmd)

	callCmd := &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Invoke one tool directly and print its result",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runCall,
	}
	rootCmd.AddCommand(callCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "universal-db-mcp "+version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}

func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	if name, _ := cmd.Flags().GetString("connection"); name != "" {
		return config.FromConnection(name)
	}
	return config.FromEnv()
}

func runStdioServer(cmd *cobra.Command, args []string) error {
	if err := logger.Initialize(logger.ConfigFromEnv()); err != nil {
		return err
	}
	defer logger.Shutdown()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict-identifiers")
	return server.RunStdio(server.Options{
		Version:           version,
		Config:            cfg,
		StrictIdentifiers: strict,
	})
}

func runCall(cmd *cobra.Command, args []string) error {
	if err := logger.Initialize(logger.ConfigFromEnv()); err != nil {
		return err
	}
	defer logger.Shutdown()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	toolArgs := map[string]any{}
	if len(args) > 1 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("invalid JSON arguments: %v", err)
		}
	}

	strict, _ := cmd.Flags().GetBool("strict-identifiers")
	registry := tools.New(cfg, strict)

	result := registry.Call(context.Background(), args[0], toolArgs)
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			fmt.Println(text.Text)
		}
	}
	if result.IsError {
		return fmt.Errorf("tool %s failed", args[0])
	}
	return nil
}
