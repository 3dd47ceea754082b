// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for assistant integration
package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/touchbase/handlers"
	"github.com/harperreed/touchbase/schedule"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(ctx context.Context, e *schedule.Engine, logger *log.Logger, version string) error {
	logger.Info("starting MCP server", "version", version)

	server := handlers.NewServer(e, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
