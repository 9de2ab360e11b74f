package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/formalbridge/waterfall/internal/audit"
	"github.com/formalbridge/waterfall/internal/common"
	"github.com/formalbridge/waterfall/internal/model"
)

// RunSummary is the persisted view of one audit run.
type RunSummary struct {
	CreatedAt        time.Time
	ID               string
	SourceFile       string
	FileHash         string
	NetProperty      string
	PrescribedPart   string
	VerificationCode string
	TotalRows        int
	ValidRows        int
	BlockingCount    int
	AdvisoryCount    int
	CanProceed       bool
	CapApplied       bool
}

// SaveRun persists a completed audit run and its warnings.
func (s *AuditStore) SaveRun(ctx context.Context, run *audit.Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var netProperty, prescribedPart sql.NullString
	capApplied := false
	if run.NetProperty != nil {
		netProperty = sql.NullString{String: run.NetProperty.NetProperty.String(), Valid: true}
	}
	if run.PrescribedPart != nil {
		prescribedPart = sql.NullString{String: run.PrescribedPart.FinalAmount.String(), Valid: true}
		capApplied = run.PrescribedPart.CapApplied
		if !netProperty.Valid {
			netProperty = sql.NullString{String: run.PrescribedPart.NetProperty.String(), Valid: true}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO audit_runs
			(id, created_at, source_file, file_hash, total_rows, valid_rows,
			 blocking_count, advisory_count, can_proceed, net_property,
			 prescribed_part, cap_applied)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.SourceFile, run.FileHash,
		run.Report.TotalRows, run.Report.ValidRows,
		run.Report.BlockingCount, run.Report.AdvisoryCount, run.Report.CanProceed,
		netProperty, prescribedPart, capApplied); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, w := range run.Report.Warnings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO audit_warnings
				(run_id, seq, code, severity, message, suggestion, statutory_ref, row_number)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, w.Code, string(w.Severity), w.Message,
			w.Suggestion, w.StatutoryRef, w.RowNumber); err != nil {
			return fmt.Errorf("failed to insert warning %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetRun loads one persisted run summary by ID.
func (s *AuditStore) GetRun(ctx context.Context, id string) (*RunSummary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source_file, file_hash, total_rows, valid_rows,
			blocking_count, advisory_count, can_proceed,
			COALESCE(net_property, ''), COALESCE(prescribed_part, ''),
			cap_applied, COALESCE(verification_code, '')
		 FROM audit_runs WHERE id = ?`, id)

	var summary RunSummary
	err := row.Scan(&summary.ID, &summary.CreatedAt, &summary.SourceFile,
		&summary.FileHash, &summary.TotalRows, &summary.ValidRows,
		&summary.BlockingCount, &summary.AdvisoryCount, &summary.CanProceed,
		&summary.NetProperty, &summary.PrescribedPart,
		&summary.CapApplied, &summary.VerificationCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return &summary, nil
}

// ListRuns returns the most recent run summaries, newest first.
func (s *AuditStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source_file, file_hash, total_rows, valid_rows,
			blocking_count, advisory_count, can_proceed,
			COALESCE(net_property, ''), COALESCE(prescribed_part, ''),
			cap_applied, COALESCE(verification_code, '')
		 FROM audit_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		if err := rows.Scan(&summary.ID, &summary.CreatedAt, &summary.SourceFile,
			&summary.FileHash, &summary.TotalRows, &summary.ValidRows,
			&summary.BlockingCount, &summary.AdvisoryCount, &summary.CanProceed,
			&summary.NetProperty, &summary.PrescribedPart,
			&summary.CapApplied, &summary.VerificationCode); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// GetWarnings loads the persisted warnings for one run, in report order.
func (s *AuditStore) GetWarnings(ctx context.Context, runID string) ([]model.Warning, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, severity, message, COALESCE(suggestion, ''),
			COALESCE(statutory_ref, ''), COALESCE(row_number, 0)
		 FROM audit_warnings WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load warnings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var warnings []model.Warning
	for rows.Next() {
		var w model.Warning
		var severity string
		if err := rows.Scan(&w.Code, &severity, &w.Message,
			&w.Suggestion, &w.StatutoryRef, &w.RowNumber); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		w.Severity = model.Severity(severity)
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}

// SetVerificationCode records the certificate verification code issued for
// a clear run. It refuses to certify a run that cannot proceed.
func (s *AuditStore) SetVerificationCode(ctx context.Context, runID, code string) error {
	summary, err := s.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if !summary.CanProceed {
		return fmt.Errorf("run %s: %w", runID, common.ErrLedgerBlocked)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE audit_runs SET verification_code = ? WHERE id = ?`, code, runID); err != nil {
		return fmt.Errorf("failed to record verification code: %w", err)
	}
	return nil
}
