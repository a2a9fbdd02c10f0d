package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mitra9917/FinDash/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the two ledger blobs in a single key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadTransactions returns the persisted transaction list. A missing key or a
// blob that fails to decode yields the empty list.
func (s *SQLiteStore) LoadTransactions(ctx context.Context) []core.Transaction {
	var txns []core.Transaction
	if !s.loadBlob(ctx, KeyTransactions, &txns) {
		return []core.Transaction{}
	}
	if txns == nil {
		txns = []core.Transaction{}
	}
	return txns
}

func (s *SQLiteStore) SaveTransactions(ctx context.Context, txns []core.Transaction) error {
	return s.saveBlob(ctx, KeyTransactions, txns)
}

// LoadBudgets returns the persisted budget map. A missing key or a blob that
// fails to decode yields the empty map.
func (s *SQLiteStore) LoadBudgets(ctx context.Context) map[string]core.Money {
	var blob budgetBlob
	if !s.loadBlob(ctx, KeyBudgets, &blob) {
		return map[string]core.Money{}
	}
	return budgetsFromBlob(blob)
}

func (s *SQLiteStore) SaveBudgets(ctx context.Context, budgets map[string]core.Money) error {
	return s.saveBlob(ctx, KeyBudgets, budgetsToBlob(budgets))
}

func (s *SQLiteStore) loadBlob(ctx context.Context, key string, dest any) bool {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		slog.WarnContext(ctx, "Blob read failed, substituting empty default",
			"key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		slog.WarnContext(ctx, "Blob is malformed, substituting empty default",
			"key", key, "error", err)
		return false
	}
	return true
}

func (s *SQLiteStore) saveBlob(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode blob %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(encoded))
	if err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}

	slog.DebugContext(ctx, "Blob saved", "key", key, "bytes", len(encoded))
	return nil
}
