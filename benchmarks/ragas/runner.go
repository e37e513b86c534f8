// ABOUTME: Test runner for RAGAS benchmarks - executes scenarios and collects results
// ABOUTME: Each scenario gets a fresh in-memory index and session so runs are isolated

package ragas

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acmecloud/askdocs/internal/config"
	"github.com/acmecloud/askdocs/internal/ingest"
	"github.com/acmecloud/askdocs/internal/llm"
	"github.com/acmecloud/askdocs/internal/models"
	"github.com/acmecloud/askdocs/internal/rag"
	"github.com/acmecloud/askdocs/internal/session"
	"github.com/acmecloud/askdocs/internal/vectorstore"
)

// BenchmarkRunner executes RAGAS benchmark tests against the live OpenAI
// backend with an in-memory vector index.
type BenchmarkRunner struct {
	client  *llm.Client
	cfg     *config.Config
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a new benchmark runner.
func NewBenchmarkRunner(cfg *config.Config, verbose bool) (*BenchmarkRunner, error) {
	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		AzureEndpoint:  cfg.AzureEndpoint,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: llm.EmbeddingModel(cfg.EmbeddingModel),
		Temperature:    cfg.Temperature,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return &BenchmarkRunner{
		client:  client,
		cfg:     cfg,
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}, nil
}

// RunScenario executes a single benchmark scenario.
func (r *BenchmarkRunner) RunScenario(ctx context.Context, scenario Scenario) (Result, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	// Fresh index and session per scenario for isolation.
	store := vectorstore.New(r.client, vectorstore.NewMemoryIndex(), scenario.ID, r.cfg.Dimension)
	if err := store.EnsureReady(ctx); err != nil {
		return Result{}, fmt.Errorf("preparing index: %w", err)
	}

	docs := make([]models.Document, len(scenario.Documents))
	for i, doc := range scenario.Documents {
		docs[i] = models.Document{Source: doc.Source, Text: ingest.Normalize(doc.Text)}
	}
	chunks := ingest.Chunk(docs, r.cfg.MaxChars)
	if _, err := store.Upsert(ctx, chunks); err != nil {
		return Result{}, fmt.Errorf("indexing corpus: %w", err)
	}

	generator := rag.NewGenerator(r.client, rag.NewRegistry())
	assistant := rag.NewAssistant(store, session.NewStore(r.cfg.MaxTurns), generator, r.cfg.TopK)

	var finalAnswer string
	var citedSources []string

	for _, turn := range scenario.Turns {
		if r.verbose {
			fmt.Printf("[Turn %d] User: %s\n", turn.TurnNumber, turn.Question)
		}

		answer, err := assistant.Ask(ctx, "benchmark", turn.Question)
		if err != nil {
			return Result{}, fmt.Errorf("turn %d failed: %w", turn.TurnNumber, err)
		}

		if r.verbose {
			preview := answer.Text
			if len(preview) > 150 {
				preview = preview[:150]
			}
			fmt.Printf("[Turn %d] AI: %s\n\n", turn.TurnNumber, preview)
		}

		if turn.TurnNumber == scenario.GroundTruth.FinalQueryTurn {
			finalAnswer = answer.Text
			citedSources = answer.Sources
		}
	}

	result := r.metrics.EvaluateScenario(scenario, finalAnswer, citedSources)

	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RESULTS: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Printf("Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Printf("Overall Score: %.2f\n", result.OverallScore)
		fmt.Printf("Status: %s\n", result.Status)
		fmt.Printf("========================================\n\n")
	}

	return result, nil
}

// RunAllScenarios executes every scenario in order.
func (r *BenchmarkRunner) RunAllScenarios(ctx context.Context) ([]Result, error) {
	var results []Result
	for _, scenario := range AllScenarios() {
		result, err := r.RunScenario(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// ExportResults writes results as indented JSON to the given path.
func (r *BenchmarkRunner) ExportResults(results []Result, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	if r.verbose {
		fmt.Printf("Results exported to %s\n", path)
	}
	return nil
}
