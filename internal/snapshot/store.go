// Package snapshot persists plan snapshots across build invocations so the
// next run can diff its plan against the previous one.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned by Latest when the store is empty.
var ErrNoSnapshot = errors.New("no snapshot recorded")

// ActionRecord is the persisted identity of one build action.
type ActionRecord struct {
	Fingerprint string
	Builder     string
	Package     string
	Description string
}

// Record is one persisted plan snapshot.
type Record struct {
	InvocationID string
	Signature    string
	Revision     string
	CreatedAt    time.Time
	Actions      []ActionRecord
}

// Store implements snapshot persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (or creates) the snapshot database.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		signature TEXT NOT NULL,
		revision TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS snapshot_actions (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
		fingerprint TEXT NOT NULL,
		builder TEXT NOT NULL,
		package TEXT NOT NULL,
		description TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshot_created ON snapshots(created_at);
	CREATE INDEX IF NOT EXISTS idx_action_snapshot ON snapshot_actions(snapshot_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists a new snapshot and returns its invocation id.
func (s *Store) Save(ctx context.Context, signature, revision string, actions []ActionRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, signature, revision, created_at) VALUES (?, ?, ?, ?)",
		id, signature, revision, time.Now().Unix(),
	); err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	for _, a := range actions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO snapshot_actions (snapshot_id, fingerprint, builder, package, description) VALUES (?, ?, ?, ?, ?)",
			id, a.Fingerprint, a.Builder, a.Package, a.Description,
		); err != nil {
			return "", fmt.Errorf("insert action: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}
	return id, nil
}

// Latest returns the most recently saved snapshot, or ErrNoSnapshot.
func (s *Store) Latest(ctx context.Context) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, signature, revision, created_at FROM snapshots ORDER BY rowid DESC LIMIT 1")

	var rec Record
	var createdUnix int64
	var revision sql.NullString
	if err := row.Scan(&rec.InvocationID, &rec.Signature, &revision, &createdUnix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	rec.Revision = revision.String
	rec.CreatedAt = time.Unix(createdUnix, 0)

	rows, err := s.db.QueryContext(ctx,
		"SELECT fingerprint, builder, package, description FROM snapshot_actions WHERE snapshot_id = ?",
		rec.InvocationID)
	if err != nil {
		return nil, fmt.Errorf("query snapshot actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a ActionRecord
		if err := rows.Scan(&a.Fingerprint, &a.Builder, &a.Package, &a.Description); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		rec.Actions = append(rec.Actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return &rec, nil
}

// Prune deletes all but the most recent keep snapshots.
func (s *Store) Prune(ctx context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshot_actions WHERE snapshot_id NOT IN (
			SELECT id FROM snapshots ORDER BY rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune actions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
