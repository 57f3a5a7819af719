package historyhooks

import (
	"encoding/json"
	"sync"
)

// ──────────────────────────────────────────────
// History Store — per-session conversation persistence
// ──────────────────────────────────────────────

// HistoryStore is the pluggable backend for per-session conversation
// history. Entries are ordered; each is stored as one JSON document so
// all three content shapes survive a round-trip unchanged.
type HistoryStore interface {
	// Append adds one entry to the end of a session's history.
	Append(sessionID string, entry interface{}) error
	// History returns a session's entries in order. Decoded entries
	// are strings and map[string]interface{} values, the shapes the
	// rewriter understands.
	History(sessionID string) ([]interface{}, error)
	// Trim keeps only the last maxSize entries of a session.
	Trim(sessionID string, maxSize int) error
	// Clear removes a session's history.
	Clear(sessionID string) error
	// Length returns the number of stored entries.
	Length(sessionID string) (int, error)
}

// InMemoryHistoryStore is a thread-safe in-memory HistoryStore for
// development. Data is lost on restart.
type InMemoryHistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]string
}

// NewInMemoryHistoryStore creates a new in-memory store.
func NewInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{sessions: make(map[string][]string)}
}

func (s *InMemoryHistoryStore) Append(sessionID string, entry interface{}) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], string(data))
	return nil
}

func (s *InMemoryHistoryStore) History(sessionID string) ([]interface{}, error) {
	s.mu.RLock()
	raw := s.sessions[sessionID]
	items := make([]string, len(raw))
	copy(items, raw)
	s.mu.RUnlock()
	return decodeEntries(items)
}

func (s *InMemoryHistoryStore) Trim(sessionID string, maxSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.sessions[sessionID]
	if maxSize > 0 && len(items) > maxSize {
		s.sessions[sessionID] = items[len(items)-maxSize:]
	}
	return nil
}

func (s *InMemoryHistoryStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *InMemoryHistoryStore) Length(sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID]), nil
}

func decodeEntries(items []string) ([]interface{}, error) {
	entries := make([]interface{}, 0, len(items))
	for _, item := range items {
		var entry interface{}
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Compile-time interface check.
var _ HistoryStore = (*InMemoryHistoryStore)(nil)
