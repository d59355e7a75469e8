// Package sqlite implements the vocabulary store on SQLite.
//
// The store keeps two tables: vocabulary holds each unique word and patterns
// holds the example sentences generated for it. The database file lives in
// the configured data directory and is reused across runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "vocab.db"

// executor is satisfied by both *sql.DB and *sql.Tx so the query helpers can
// run inside or outside a transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements types.Vocabulary on a SQLite database file.
type Store struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	path     string
	db       *sql.DB
}

var _ types.Vocabulary = (*Store)(nil)

// NewStore creates a new store instance.
// The store is not attached; call Attach with a Config to open it.
func NewStore() *Store {
	return &Store{}
}

// Attach opens the database in config.DataDir, creating the directory and
// the schema if needed. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return storeErr("create data dir", err)
	}

	path := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return storeErr("open database", err)
	}
	// One connection keeps every statement on the same SQLite handle.
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return storeErr("init schema", err)
	}

	s.db = db
	s.path = path
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Detach is idempotent.
// After Detach, all operations return ErrStoreDetached.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	s.attached = false
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		if err != nil {
			return storeErr("close database", err)
		}
	}
	return nil
}

// Path returns the database file path, or "" when detached.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// EnsureWord returns the id of text, inserting it when absent.
// The lookup and insert run in one transaction.
func (s *Store) EnsureWord(ctx context.Context, text string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return 0, false, types.ErrStoreDetached
	}

	var (
		id     int64
		wasNew bool
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, wasNew, err = ensureWord(ctx, tx, text)
		return err
	})
	return id, wasNew, err
}

// AddPattern appends a pattern for wordID.
func (s *Store) AddPattern(ctx context.Context, wordID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	return addPattern(ctx, s.db, wordID, text)
}

// RecentWords returns up to limit words, newest first, with their patterns.
func (s *Store) RecentWords(ctx context.Context, limit int) ([]types.WordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return recentWords(ctx, s.db, limit)
}

// CountWords returns the number of stored words.
func (s *Store) CountWords(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return 0, types.ErrStoreDetached
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocabulary`).Scan(&n); err != nil {
		return 0, storeErr("count words", err)
	}
	return n, nil
}

// InTx runs fn inside a transaction. Writes made through w commit together
// when fn returns nil; any error from fn rolls them back and is returned
// unchanged. fn must not call methods on s itself.
func (s *Store) InTx(ctx context.Context, fn func(w types.WordWriter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return fn(&txWriter{tx: tx})
	})
}

// withTx begins a transaction, runs fn, and commits or rolls back.
// The caller must hold s.mu.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}

// txWriter exposes a transaction as a types.WordWriter.
type txWriter struct {
	tx *sql.Tx
}

func (w *txWriter) EnsureWord(ctx context.Context, text string) (int64, bool, error) {
	return ensureWord(ctx, w.tx, text)
}

func (w *txWriter) AddPattern(ctx context.Context, wordID int64, text string) error {
	return addPattern(ctx, w.tx, wordID, text)
}

func ensureWord(ctx context.Context, ex executor, text string) (int64, bool, error) {
	if strings.TrimSpace(text) == "" {
		return 0, false, types.ErrEmptyWord
	}

	var id int64
	err := ex.QueryRowContext(ctx, `SELECT id FROM vocabulary WHERE word = ?`, text).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, storeErr("look up word", err)
	}

	res, err := ex.ExecContext(ctx, `INSERT INTO vocabulary (word) VALUES (?)`, text)
	if err != nil {
		return 0, false, storeErr("insert word", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, storeErr("insert word id", err)
	}
	return id, true, nil
}

func addPattern(ctx context.Context, ex executor, wordID int64, text string) error {
	if wordID <= 0 {
		return types.ErrInvalidWordID
	}
	if _, err := ex.ExecContext(ctx, `INSERT INTO patterns (word_id, pattern) VALUES (?, ?)`, wordID, text); err != nil {
		return storeErr("insert pattern", err)
	}
	return nil
}

func recentWords(ctx context.Context, ex executor, limit int) ([]types.WordEntry, error) {
	if limit <= 0 {
		return []types.WordEntry{}, nil
	}

	rows, err := ex.QueryContext(ctx, `SELECT id, word FROM vocabulary ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, storeErr("query recent words", err)
	}
	entries := make([]types.WordEntry, 0, limit)
	for rows.Next() {
		var w types.Word
		if err := rows.Scan(&w.ID, &w.Text); err != nil {
			rows.Close()
			return nil, storeErr("scan word", err)
		}
		entries = append(entries, types.WordEntry{Word: w, Patterns: []string{}})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, storeErr("iterate words", err)
	}
	rows.Close()

	// Patterns are fetched after the word rows are closed; the pool holds a
	// single connection.
	for i := range entries {
		patterns, err := patternsFor(ctx, ex, entries[i].Word.ID)
		if err != nil {
			return nil, err
		}
		entries[i].Patterns = patterns
	}
	return entries, nil
}

func patternsFor(ctx context.Context, ex executor, wordID int64) ([]string, error) {
	rows, err := ex.QueryContext(ctx, `SELECT pattern FROM patterns WHERE word_id = ? ORDER BY id`, wordID)
	if err != nil {
		return nil, storeErr("query patterns", err)
	}
	defer rows.Close()

	patterns := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, storeErr("scan pattern", err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate patterns", err)
	}
	return patterns, nil
}

// dsn builds a modernc.org/sqlite data source name with foreign keys on.
func dsn(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// storeErr wraps err with ErrStore and the failing operation.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrStore, op, err)
}
