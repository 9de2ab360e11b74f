package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. Failure to reach it is fatal.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS audit_runs (
					id TEXT PRIMARY KEY,
					created_at DATETIME NOT NULL,
					source_file TEXT NOT NULL,
					file_hash TEXT NOT NULL,
					total_rows INTEGER NOT NULL,
					valid_rows INTEGER NOT NULL,
					blocking_count INTEGER NOT NULL,
					advisory_count INTEGER NOT NULL,
					can_proceed BOOLEAN NOT NULL,
					net_property TEXT,
					prescribed_part TEXT,
					cap_applied BOOLEAN NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_audit_runs_created ON audit_runs(created_at)`,
				`CREATE INDEX idx_audit_runs_hash ON audit_runs(file_hash)`,

				`CREATE TABLE IF NOT EXISTS audit_warnings (
					run_id TEXT NOT NULL,
					seq INTEGER NOT NULL,
					code TEXT NOT NULL,
					severity TEXT NOT NULL,
					message TEXT NOT NULL,
					suggestion TEXT,
					statutory_ref TEXT,
					row_number INTEGER,
					PRIMARY KEY (run_id, seq),
					FOREIGN KEY (run_id) REFERENCES audit_runs(id)
				)`,
				`CREATE INDEX idx_audit_warnings_code ON audit_warnings(code)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 1 failed: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Certificate verification codes",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(
				`ALTER TABLE audit_runs ADD COLUMN verification_code TEXT`); err != nil {
				return fmt.Errorf("migration 2 failed: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies any outstanding schema migrations.
func (s *AuditStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Debug("applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}
