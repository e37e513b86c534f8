// ABOUTME: VectorStore facade owning the embedding function and similarity index
// ABOUTME: Implements the embed/upsert/query contract with namespace partitioning
package vectorstore

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/models"
)

// upsertBatchSize bounds one index write. Batches are not atomic: a failure
// mid-run leaves earlier batches committed (at-least-once semantics;
// deterministic chunk IDs make re-ingestion overwrite rather than duplicate).
const upsertBatchSize = 100

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Entry is one stored point in the similarity index.
type Entry struct {
	ID      string
	Vector  []float32
	Payload map[string]string
}

// Match is one ranked result from a similarity search.
type Match struct {
	ID      string
	Score   float32
	Payload map[string]string
}

// Index is the similarity-search capability backing the store.
type Index interface {
	// Ensure creates the index if absent and fails if an existing index
	// has an incompatible dimension.
	Ensure(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, namespace string, entries []Entry) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error)
}

// Store owns an embedder and an index, and scopes all reads and writes to
// one namespace.
type Store struct {
	embedder  Embedder
	index     Index
	namespace string
	dimension int
}

// New creates a store over the given capabilities.
func New(embedder Embedder, index Index, namespace string, dimension int) *Store {
	return &Store{
		embedder:  embedder,
		index:     index,
		namespace: namespace,
		dimension: dimension,
	}
}

// EnsureReady creates or validates the backing index.
func (s *Store) EnsureReady(ctx context.Context) error {
	return s.index.Ensure(ctx, s.dimension)
}

// Upsert embeds each chunk's text and writes it to the index with the
// chunk's metadata plus the text itself, so query results carry their
// content. Chunks without an ID get a fresh random one.
func (s *Store) Upsert(ctx context.Context, chunks []models.Chunk) (int, error) {
	written := 0
	batch := make([]Entry, 0, upsertBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.index.Upsert(ctx, s.namespace, batch); err != nil {
			return err
		}
		written += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, chunk := range chunks {
		vector, err := s.embed(ctx, chunk.Text)
		if err != nil {
			return written, err
		}

		id := chunk.ID
		if id == "" {
			id = uuid.NewString()
		}

		payload := map[string]string{models.MetaText: chunk.Text}
		for k, v := range chunk.Metadata {
			payload[k] = v
		}

		batch = append(batch, Entry{ID: id, Vector: vector, Payload: payload})
		if len(batch) >= upsertBatchSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}

	if err := flush(); err != nil {
		return written, err
	}
	log.Printf("Upserted %d chunks into namespace %q", written, s.namespace)
	return written, nil
}

// Query embeds the text and returns up to topK matches from the store's
// namespace, ordered by descending similarity score.
func (s *Store) Query(ctx context.Context, text string, topK int) ([]models.RetrievedChunk, error) {
	if topK <= 0 {
		return nil, fault.New(fault.KindValidation, "top_k must be positive, got %d", topK)
	}

	vector, err := s.embed(ctx, text)
	if err != nil {
		return nil, err
	}

	matches, err := s.index.Query(ctx, s.namespace, vector, topK)
	if err != nil {
		return nil, err
	}

	results := make([]models.RetrievedChunk, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.RetrievedChunk{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: m.Payload,
		})
	}
	return results, nil
}

func (s *Store) embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if s.dimension > 0 && len(vector) != s.dimension {
		return nil, fault.New(fault.KindIndex, "embedding dimension %d does not match configured dimension %d", len(vector), s.dimension)
	}
	return vector, nil
}
