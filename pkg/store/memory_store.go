package store

import (
	"context"
	"sync"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// InMemoryStore keeps session documents in process memory. Reads and writes
// hand out deep copies so callers can never alias the stored tree.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]gamestate.Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: map[string]gamestate.Document{}}
}

func (s *InMemoryStore) Read(_ context.Context, sessionID string) (gamestate.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *InMemoryStore) Write(_ context.Context, sessionID string, doc gamestate.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[sessionID] = doc.Clone()
	return nil
}

var _ DocumentStore = (*InMemoryStore)(nil)
