// ABOUTME: In-process session memory with sliding-window eviction
// ABOUTME: Per-session locking so concurrent requests on one session serialize without blocking others
package session

import (
	"sync"

	"github.com/acmecloud/askdocs/internal/models"
)

// DefaultMaxTurns bounds history to 6 exchanges (12 messages).
const DefaultMaxTurns = 6

// Store maps session IDs to bounded, ordered turn lists. Sessions are created
// lazily on first append and live for the process lifetime. Store is safe for
// concurrent use; operations on different sessions do not block each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	maxTurns int
}

type entry struct {
	mu    sync.Mutex
	turns []models.Turn
}

// NewStore creates a session store keeping the most recent maxTurns
// exchanges (maxTurns*2 messages) per session. Non-positive maxTurns
// falls back to DefaultMaxTurns.
func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		sessions: make(map[string]*entry),
		maxTurns: maxTurns,
	}
}

// Get returns a copy of the session's turns in order, or an empty slice for
// an unknown session. It never fails.
func (s *Store) Get(sessionID string) []models.Turn {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

// AppendUser appends a user turn and trims the window.
func (s *Store) AppendUser(sessionID, content string) {
	s.append(sessionID, models.Turn{Role: models.RoleUser, Content: content})
}

// AppendAssistant appends an assistant turn and trims the window.
func (s *Store) AppendAssistant(sessionID, content string) {
	s.append(sessionID, models.Turn{Role: models.RoleAssistant, Content: content})
}

// AppendExchange appends the user question and assistant answer as one
// serialized operation, so interleaved requests on the same session cannot
// split an exchange.
func (s *Store) AppendExchange(sessionID, question, answer string) {
	e := s.entryFor(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.turns = append(e.turns,
		models.Turn{Role: models.RoleUser, Content: question},
		models.Turn{Role: models.RoleAssistant, Content: answer},
	)
	e.trim(s.maxTurns)
}

func (s *Store) append(sessionID string, turn models.Turn) {
	e := s.entryFor(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.turns = append(e.turns, turn)
	e.trim(s.maxTurns)
}

func (s *Store) entryFor(sessionID string) *entry {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sessions[sessionID]; ok {
		return e
	}
	e = &entry{}
	s.sessions[sessionID] = e
	return e
}

// trim keeps the newest maxTurns*2 turns; caller holds the entry lock.
func (e *entry) trim(maxTurns int) {
	limit := maxTurns * 2
	if len(e.turns) > limit {
		e.turns = e.turns[len(e.turns)-limit:]
	}
}
