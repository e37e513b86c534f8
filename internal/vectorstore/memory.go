// ABOUTME: In-memory similarity index with brute-force cosine search
// ABOUTME: Used in tests and small single-process deployments
package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/acmecloud/askdocs/internal/fault"
)

// MemoryIndex keeps all entries in process memory, partitioned by namespace.
// Safe for concurrent use.
type MemoryIndex struct {
	mu         sync.RWMutex
	dimension  int
	namespaces map[string]map[string]Entry
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{namespaces: make(map[string]map[string]Entry)}
}

// Ensure fixes the index dimension on first call and rejects a different
// dimension afterwards.
func (m *MemoryIndex) Ensure(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fault.New(fault.KindIndex, "dimension must be positive, got %d", dimension)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dimension == 0 {
		m.dimension = dimension
		return nil
	}
	if m.dimension != dimension {
		return fault.New(fault.KindIndex, "index has dimension %d, requested %d", m.dimension, dimension)
	}
	return nil
}

// Upsert writes entries into the namespace, replacing same-ID entries.
func (m *MemoryIndex) Upsert(ctx context.Context, namespace string, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.namespaces[namespace]
	if !ok {
		ns = make(map[string]Entry)
		m.namespaces[namespace] = ns
	}
	for _, e := range entries {
		if m.dimension > 0 && len(e.Vector) != m.dimension {
			return fault.New(fault.KindIndex, "entry %s has dimension %d, index expects %d", e.ID, len(e.Vector), m.dimension)
		}
		ns[e.ID] = e
	}
	return nil
}

// Query returns up to topK entries from the namespace ranked by cosine
// similarity to the query vector.
func (m *MemoryIndex) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []Match
	for _, e := range m.namespaces[namespace] {
		matches = append(matches, Match{
			ID:      e.ID,
			Score:   CosineSimilarity(vector, e.Vector),
			Payload: e.Payload,
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
