package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/config"
)

// SQLiteStorage implements the audit.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(cfg config.SQLiteConfig) (*SQLiteStorage, error) {
	logger := slog.Default().With("component", "audit.storage.sqlite")

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, audit.NewStorageError("sqlite", "mkdir", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite audit storage initialized",
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return audit.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return audit.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return audit.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return audit.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return audit.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return audit.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a security event to the database.
func (s *SQLiteStorage) Store(ctx context.Context, ev *audit.SecurityEvent) error {
	ruleIDs, _ := json.Marshal(ev.RuleIDs)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO security_events (id, timestamp, session_id, kind, rule_ids)
		VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.Timestamp, ev.SessionID, ev.Kind, string(ruleIDs),
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query retrieves security events matching the query filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, q audit.Query) ([]*audit.SecurityEvent, error) {
	var conds []string
	var args []interface{}

	if q.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, q.SessionID)
	}
	if q.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, q.Kind)
	}
	if !q.Since.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, q.Since)
	}

	sqlQuery := "SELECT id, timestamp, session_id, kind, rule_ids FROM security_events"
	if len(conds) > 0 {
		sqlQuery += " WHERE " + strings.Join(conds, " AND ")
	}
	sqlQuery += " ORDER BY timestamp DESC"
	if q.Limit > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	var events []*audit.SecurityEvent
	for rows.Next() {
		var ev audit.SecurityEvent
		var ruleIDs sql.NullString
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.SessionID, &ev.Kind, &ruleIDs); err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}
		if ruleIDs.Valid && ruleIDs.String != "" {
			if err := json.Unmarshal([]byte(ruleIDs.String), &ev.RuleIDs); err != nil {
				s.logger.Warn("malformed rule_ids in stored event", "event_id", ev.ID)
			}
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "iterate", err)
	}

	return events, nil
}

// Count returns the total number of stored events.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM security_events").Scan(&n)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

// DeleteBefore removes events older than cutoff.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM security_events WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_before", err)
	}
	removed, _ := res.RowsAffected()
	return removed, nil
}

// Trim removes the oldest events until at most keep remain.
func (s *SQLiteStorage) Trim(ctx context.Context, keep int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM security_events WHERE id IN (
			SELECT id FROM security_events
			ORDER BY timestamp DESC
			LIMIT -1 OFFSET ?
		)`, keep)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "trim", err)
	}
	removed, _ := res.RowsAffected()
	return removed, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return audit.NewStorageError("sqlite", "close", err)
	}
	return nil
}

// ensure interface compliance
var _ audit.Storage = (*SQLiteStorage)(nil)
var _ audit.Storage = (*MemoryStorage)(nil)
