package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// ErrNotFound is returned when a session has no persisted document yet.
var ErrNotFound = errors.New("session document not found")

// DocumentStore is the persistence collaborator. Each call is atomic; the
// pipeline performs exactly one Read and at most one Write per turn and
// relies on the store for cross-turn exclusion within a session.
type DocumentStore interface {
	Read(ctx context.Context, sessionID string) (gamestate.Document, error)
	Write(ctx context.Context, sessionID string, doc gamestate.Document) error
}

// ReadOrEmpty reads a session document, mapping "never played" to an empty
// document.
func ReadOrEmpty(ctx context.Context, s DocumentStore, sessionID string) (gamestate.Document, error) {
	doc, err := s.Read(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return gamestate.Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
