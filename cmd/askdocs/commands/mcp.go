// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to query the documentation via stdio
package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/acmecloud/askdocs/internal/config"
	"github.com/acmecloud/askdocs/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents.

Runs the assistant as an MCP (Model Context Protocol) server over stdio,
exposing ask_docs and search_docs tools to agents like Claude.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  askdocs mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "askdocs": {
  #       "command": "askdocs",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return fmt.Errorf("initializing OpenAI client: %w", err)
	}

	index, err := newIndex(cfg)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer index.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := newVectorStore(cfg, client, index)
	if err := store.EnsureReady(ctx); err != nil {
		return fmt.Errorf("preparing index: %w", err)
	}

	assistant := newAssistant(cfg, client, store)

	server := mcpserver.NewMCPServer(
		"AcmeCloud Docs Assistant",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, assistant, store, cfg.TopK)

	if !quiet {
		log.Println("askdocs MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		return nil
	case err := <-serverErr:
		return err
	}
}
