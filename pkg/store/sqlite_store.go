package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

const sqliteSessionsSchemaV1 = `
CREATE TABLE IF NOT EXISTS session_documents (
    session_id TEXT PRIMARY KEY,
    payload_json TEXT NOT NULL,
    updated_at_ms INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteStore persists session documents in a SQLite database, one JSON
// payload per session row so the document schema can evolve without SQL
// column churn.
type SQLiteStore struct {
	mu     sync.RWMutex
	dsn    string
	db     *sql.DB
	closed bool
}

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		return nil, errors.New("sqlite store: empty dsn")
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite store: open")
	}
	s := &SQLiteStore{dsn: dsn, db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(sqliteSessionsSchemaV1)
	return errors.Wrap(err, "sqlite store: migrate")
}

func (s *SQLiteStore) Read(ctx context.Context, sessionID string) (gamestate.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.New("sqlite store: closed")
	}

	var payload string
	row := s.db.QueryRowContext(ctx,
		`SELECT payload_json FROM session_documents WHERE session_id = ?`, sessionID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "sqlite store: read")
	}

	var doc gamestate.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, errors.Wrapf(err, "sqlite store: corrupt payload for session %s", sessionID)
	}
	return doc, nil
}

func (s *SQLiteStore) Write(ctx context.Context, sessionID string, doc gamestate.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("sqlite store: closed")
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "sqlite store: marshal")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_documents (session_id, payload_json, updated_at_ms) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET payload_json = excluded.payload_json, updated_at_ms = excluded.updated_at_ms`,
		sessionID, string(payload), time.Now().UnixMilli())
	return errors.Wrap(err, "sqlite store: write")
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

var _ DocumentStore = (*SQLiteStore)(nil)
