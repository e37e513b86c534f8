// ABOUTME: Local SQLite-backed similarity index for offline deployments
// ABOUTME: Vectors stored as little-endian BLOBs, searched with a brute-force cosine scan
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/vectorstore"
)

const schema = `
CREATE TABLE IF NOT EXISTS index_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    dimension INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    namespace TEXT NOT NULL,
    vector BLOB NOT NULL,
    payload TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_entries_namespace ON entries(namespace);
`

// Index is a vectorstore.Index stored in a single SQLite file. Suited to
// air-gapped or single-node deployments; search cost is linear in the
// number of entries per namespace.
type Index struct {
	db   *sql.DB
	path string
}

// Open opens or creates the index database at path.
func Open(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fault.Wrap(fault.KindIndex, err, "creating index directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fault.Wrap(fault.KindIndex, err, "opening index database %q", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fault.Wrap(fault.KindIndex, err, "initializing index schema")
	}

	return &Index{db: db, path: path}, nil
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// Ensure records the index dimension on first use and rejects a mismatch
// against an existing database.
func (x *Index) Ensure(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fault.New(fault.KindIndex, "dimension must be positive, got %d", dimension)
	}

	var existing int
	err := x.db.QueryRowContext(ctx, "SELECT dimension FROM index_meta WHERE id = 1").Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		_, err = x.db.ExecContext(ctx, "INSERT INTO index_meta (id, dimension) VALUES (1, ?)", dimension)
		return fault.Wrap(fault.KindIndex, err, "recording index dimension")
	case err != nil:
		return fault.Wrap(fault.KindIndex, err, "reading index dimension")
	case existing != dimension:
		return fault.New(fault.KindIndex, "index %q has dimension %d, configured dimension is %d", x.path, existing, dimension)
	}
	return nil
}

// Upsert writes entries, replacing rows with the same ID.
func (x *Index) Upsert(ctx context.Context, namespace string, entries []vectorstore.Entry) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fault.Wrap(fault.KindIndex, err, "beginning upsert transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fault.Wrap(fault.KindIndex, err, "encoding payload for entry %s", e.ID)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO entries (id, namespace, vector, payload)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				namespace = excluded.namespace,
				vector = excluded.vector,
				payload = excluded.payload
		`, e.ID, namespace, vectorToBlob(e.Vector), string(payload))
		if err != nil {
			return fault.Wrap(fault.KindIndex, err, "writing entry %s", e.ID)
		}
	}

	return fault.Wrap(fault.KindIndex, tx.Commit(), "committing upsert")
}

// Query scans the namespace, scores every entry by cosine similarity, and
// returns the topK best matches in descending score order.
func (x *Index) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	rows, err := x.db.QueryContext(ctx, "SELECT id, vector, payload FROM entries WHERE namespace = ?", namespace)
	if err != nil {
		return nil, fault.Wrap(fault.KindIndex, err, "querying namespace %q", namespace)
	}
	defer func() { _ = rows.Close() }()

	var matches []vectorstore.Match
	for rows.Next() {
		var (
			id          string
			blob        []byte
			payloadJSON string
		)
		if err := rows.Scan(&id, &blob, &payloadJSON); err != nil {
			return nil, fault.Wrap(fault.KindIndex, err, "scanning entry")
		}

		var payload map[string]string
		if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
			return nil, fault.Wrap(fault.KindIndex, err, "decoding payload for entry %s", id)
		}

		matches = append(matches, vectorstore.Match{
			ID:      id,
			Score:   vectorstore.CosineSimilarity(vector, blobToVector(blob)),
			Payload: payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Wrap(fault.KindIndex, err, "iterating entries")
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// vectorToBlob packs a float32 slice as little-endian bytes.
func vectorToBlob(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// blobToVector unpacks little-endian bytes into a float32 slice.
func blobToVector(blob []byte) []float32 {
	count := len(blob) / 4
	vector := make([]float32, count)
	for i := 0; i < count; i++ {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector
}

// Count returns the number of entries in a namespace, for diagnostics.
func (x *Index) Count(ctx context.Context, namespace string) (int, error) {
	var n int
	err := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE namespace = ?", namespace).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
