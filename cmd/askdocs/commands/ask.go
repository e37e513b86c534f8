// ABOUTME: Ask command answers a question from the CLI, one-shot or interactive
// ABOUTME: Interactive mode keeps a session so follow-up questions carry context
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/acmecloud/askdocs/internal/config"
	"github.com/acmecloud/askdocs/internal/rag"
)

var (
	askSessionID   string
	askInteractive bool
	askDirect      bool
	askTopK        int
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about the documentation",
		Long: `Ask a question about the documentation.

Answers are grounded in the most relevant indexed chunks and cite their
sources. With --direct, retrieval is skipped and the model may fetch the
full documents through a tool call instead.

Examples:
  askdocs ask "what is the SLA for the object store?"
  askdocs ask --direct "summarize the pricing model"
  askdocs ask -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askSessionID, "session", "", "Session ID for conversational context (default: random)")
	cmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "Interactive question loop")
	cmd.Flags().BoolVar(&askDirect, "direct", false, "Answer without retrieval, using tool-assisted document access")
	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of chunks to retrieve (overrides ASKDOCS_TOP_K)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if !askInteractive && len(args) == 0 {
		return fmt.Errorf("provide a question or use --interactive")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if askTopK != 0 {
		if err := validatePositiveInt(askTopK, "top-k"); err != nil {
			return err
		}
		cfg.TopK = askTopK
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

	assistant := newAssistant(cfg, client, store)

	sessionID := askSessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if askInteractive {
		return runAskLoop(cmd, assistant, sessionID)
	}
	return askOnce(cmd, assistant, sessionID, args[0])
}

func askOnce(cmd *cobra.Command, assistant *rag.Assistant, sessionID, question string) error {
	answer, err := ask(cmd, assistant, sessionID, question)
	if err != nil {
		return err
	}
	return printAnswer(cmd, answer)
}

// runAskLoop reads questions from stdin until EOF or "exit".
func runAskLoop(cmd *cobra.Command, assistant *rag.Assistant, sessionID string) error {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), boldGreen("AcmeCloud docs assistant"))
		fmt.Fprintln(cmd.OutOrStdout(), "Type a question and press Enter. Type 'exit' or press Ctrl+D to quit.")
		fmt.Fprintln(cmd.OutOrStdout())
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(cmd.OutOrStdout(), boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") {
			break
		}

		answer, err := ask(cmd, assistant, sessionID, question)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		if err := printAnswer(cmd, answer); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func ask(cmd *cobra.Command, assistant *rag.Assistant, sessionID, question string) (*rag.Answer, error) {
	if askDirect {
		return assistant.AskDirect(cmd.Context(), sessionID, question)
	}
	return assistant.Ask(cmd.Context(), sessionID, question)
}

func printAnswer(cmd *cobra.Command, answer *rag.Answer) error {
	if outputFormat == "json" {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	if len(answer.Sources) > 0 && !quiet {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cyan("Sources:"), strings.Join(answer.Sources, ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
