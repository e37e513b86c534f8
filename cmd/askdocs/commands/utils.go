// ABOUTME: Shared wiring helpers for CLI commands
// ABOUTME: Builds the vector store and assistant from configuration in one place
package commands

import (
	"fmt"

	"github.com/acmecloud/askdocs/internal/config"
	"github.com/acmecloud/askdocs/internal/ingest"
	"github.com/acmecloud/askdocs/internal/llm"
	"github.com/acmecloud/askdocs/internal/rag"
	"github.com/acmecloud/askdocs/internal/session"
	"github.com/acmecloud/askdocs/internal/vectorstore"
	qdrantindex "github.com/acmecloud/askdocs/internal/vectorstore/qdrant"
	sqliteindex "github.com/acmecloud/askdocs/internal/vectorstore/sqlite"
)

// closableIndex is what both index backends provide.
type closableIndex interface {
	vectorstore.Index
	Close() error
}

// newIndex opens the configured index backend.
func newIndex(cfg *config.Config) (closableIndex, error) {
	switch cfg.IndexBackend {
	case config.IndexQdrant:
		return qdrantindex.New(cfg.QdrantAddr, cfg.IndexName)
	case config.IndexSQLite:
		return sqliteindex.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown index backend %q", cfg.IndexBackend)
	}
}

func newLLMClient(cfg *config.Config) (*llm.Client, error) {
	return llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		AzureEndpoint:  cfg.AzureEndpoint,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: llm.EmbeddingModel(cfg.EmbeddingModel),
		Temperature:    cfg.Temperature,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
		RequestTimeout: cfg.RequestTimeout,
	})
}

// newVectorStore builds the embedding-backed store over the configured index.
func newVectorStore(cfg *config.Config, client *llm.Client, index vectorstore.Index) *vectorstore.Store {
	return vectorstore.New(client, index, cfg.Namespace, cfg.Dimension)
}

// newAssistant assembles the full question-answering pipeline.
func newAssistant(cfg *config.Config, client *llm.Client, store *vectorstore.Store) *rag.Assistant {
	registry := rag.NewRegistry()
	registry.Register(rag.FetchDocumentsTool(ingest.NewDirSource(cfg.DocumentsDir)))

	generator := rag.NewGenerator(client, registry)
	sessions := session.NewStore(cfg.MaxTurns)

	return rag.NewAssistant(store, sessions, generator, cfg.TopK)
}

// validatePositiveInt returns an error if n is not positive.
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
