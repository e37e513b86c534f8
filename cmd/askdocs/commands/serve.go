// ABOUTME: Serve command runs the HTTP question-answering API
// ABOUTME: Loads config, builds the assistant, and serves until interrupted
package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/acmecloud/askdocs/internal/api"
	"github.com/acmecloud/askdocs/internal/config"
)

var serveAddr string

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Endpoints:
  POST /ask      grounded answer with source citations
  POST /v0/ask   direct answer with tool-assisted document access
  GET  /healthz  liveness probe`,
		RunE: runServe,
		Example: `  askdocs serve
  askdocs serve --addr :9090`,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides ASKDOCS_LISTEN_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
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

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := api.NewServer(assistant)
	return server.Run(ctx, addr)
}
