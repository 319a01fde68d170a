package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

func testDoc() gamestate.Document {
	return gamestate.Document{
		gamestate.DomainCharacter: map[string]any{"name": "Sera", "level": float64(4)},
		gamestate.DomainWorld:     map[string]any{"location": "Waterdeep"},
	}
}

func TestInMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, err := s.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write(ctx, "s1", testDoc()))
	doc, err := s.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Sera", doc.Map(gamestate.DomainCharacter)["name"])
}

func TestInMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, s.Write(ctx, "s1", testDoc()))

	doc, err := s.Read(ctx, "s1")
	require.NoError(t, err)
	doc.Map(gamestate.DomainCharacter)["name"] = "Mutated"

	again, err := s.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Sera", again.Map(gamestate.DomainCharacter)["name"])
}

func TestReadOrEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	doc, err := ReadOrEmpty(ctx, s, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "sessions.db")
	s, err := NewSQLiteStore(dsn)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write(ctx, "s1", testDoc()))
	doc, err := s.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Waterdeep", doc.Map(gamestate.DomainWorld)["location"])

	// Overwrite is an upsert.
	updated := testDoc()
	updated.Map(gamestate.DomainWorld)["location"] = "Undermountain"
	require.NoError(t, s.Write(ctx, "s1", updated))
	doc, err = s.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Undermountain", doc.Map(gamestate.DomainWorld)["location"])
}
