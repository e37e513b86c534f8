// ABOUTME: Ingest command chunks, embeds, and indexes the documents directory
// ABOUTME: Re-running is safe; unchanged chunks overwrite themselves in place
package commands

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/acmecloud/askdocs/internal/config"
	"github.com/acmecloud/askdocs/internal/ingest"
)

var ingestDir string

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Index documents into the vector store",
		Long: `Index documents into the vector store.

Reads .txt and .md files from the documents directory, normalizes and
chunks their text at sentence boundaries, embeds each chunk, and upserts
it into the configured index. Chunk IDs are derived from the source file
and chunk position, so re-ingesting unchanged documents is idempotent.`,
		RunE: runIngest,
		Example: `  askdocs ingest
  askdocs ingest --dir ./handbook`,
	}

	cmd.Flags().StringVar(&ingestDir, "dir", "", "Documents directory (overrides ASKDOCS_DOCUMENTS_DIR)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if ingestDir != "" {
		cfg.DocumentsDir = ingestDir
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

	ctx := cmd.Context()
	store := newVectorStore(cfg, client, index)
	if err := store.EnsureReady(ctx); err != nil {
		return fmt.Errorf("preparing index: %w", err)
	}

	pipeline := ingest.NewPipeline(ingest.NewDirSource(cfg.DocumentsDir), store, cfg.MaxChars)
	count, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("ingesting documents: %w", err)
	}

	if !quiet {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s Indexed %d chunks from %s into %s\n",
			green("✓"), count, cfg.DocumentsDir, cfg.IndexName)
	}
	return nil
}
