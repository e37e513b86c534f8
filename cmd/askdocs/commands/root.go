// ABOUTME: Root CLI command with global flags shared by all subcommands
// ABOUTME: Wires serve, ingest, ask, mcp, and version under one entry point
package commands

import (
	"github.com/spf13/cobra"
)

var (
	quiet        bool
	verbose      bool
	outputFormat string
)

const banner = `
 █████╗ ███████╗██╗  ██╗██████╗  ██████╗  ██████╗███████╗
██╔══██╗██╔════╝██║ ██╔╝██╔══██╗██╔═══██╗██╔════╝██╔════╝
███████║███████╗█████╔╝ ██║  ██║██║   ██║██║     ███████╗
██╔══██║╚════██║██╔═██╗ ██║  ██║██║   ██║██║     ╚════██║
██║  ██║███████║██║  ██╗██████╔╝╚██████╔╝╚██████╗███████║
╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝  ╚═════╝  ╚═════╝╚══════╝`

// NewRootCmd creates the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "askdocs",
		Short: "Question answering over the AcmeCloud documentation",
		Long: banner + `

askdocs answers questions about the AcmeCloud documentation. Documents are
chunked, embedded, and stored in a vector index; answers are generated from
the most relevant chunks and cite their sources.

Get started:
  askdocs ingest              index the documents directory
  askdocs ask "what is the SLA?"
  askdocs serve               expose the assistant over HTTP
  askdocs mcp                 expose the assistant to LLM agents`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text or json)")
	cmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
