// Package usage tracks how often each approved magic word is selected.
//
// Counts are aggregate popularity data only, keyed by category and word
// from the approved catalog. They carry no session identifiers and no
// free-text input. Recording is best-effort: a failed increment is
// logged and never affects a validation result.
package usage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"storyforge-hq/warden/pkg/config"
)

// WordCount is an aggregate selection count for one catalog word.
type WordCount struct {
	Category string
	Word     string
	Count    int64
}

// Store persists magic-word selection counts in SQLite.
//
// # Thread Safety
//
// All methods are safe for concurrent use; writes serialize on the
// single SQLite writer connection.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const usageSchema = `
CREATE TABLE IF NOT EXISTS word_usage (
    category TEXT NOT NULL,
    word TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    last_used TIMESTAMP,
    PRIMARY KEY (category, word)
);
`

// NewStore opens (or creates) the usage database at cfg.Path.
func NewStore(cfg config.UsageConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("usage db path cannot be empty")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create usage db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(usageSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize usage schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "usage"),
	}, nil
}

// Increment bumps the selection count for one word.
func (s *Store) Increment(ctx context.Context, category, word string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO word_usage (category, word, count, last_used)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(category, word)
		DO UPDATE SET count = count + 1, last_used = excluded.last_used`,
		strings.ToLower(category), strings.ToLower(word), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to increment usage count: %w", err)
	}
	return nil
}

// RecordSelection bumps the count for every word of an accepted
// selection. Best-effort: failures are logged, never returned.
func (s *Store) RecordSelection(ctx context.Context, categories, words []string) {
	for i, word := range words {
		category := ""
		if i < len(categories) {
			category = categories[i]
		}
		if err := s.Increment(ctx, category, word); err != nil {
			s.logger.Warn("failed to record word usage",
				"category", category,
				"error", err)
		}
	}
}

// Top returns the most selected words in a category, highest count
// first. An empty category returns words across all categories.
func (s *Store) Top(ctx context.Context, category string, limit int) ([]WordCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query := "SELECT category, word, count FROM word_usage"
	var args []interface{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, strings.ToLower(category))
	}
	query += " ORDER BY count DESC, word ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage counts: %w", err)
	}
	defer rows.Close()

	var out []WordCount
	for rows.Next() {
		var wc WordCount
		if err := rows.Scan(&wc.Category, &wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

// Count returns the selection count for one word. A word never selected
// has count zero.
func (s *Store) Count(ctx context.Context, category, word string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		SELECT count FROM word_usage WHERE category = ? AND word = ?`,
		strings.ToLower(category), strings.ToLower(word),
	).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query usage count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
