package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formalbridge/waterfall/internal/audit"
	"github.com/formalbridge/waterfall/internal/common"
	"github.com/formalbridge/waterfall/internal/model"
	"github.com/formalbridge/waterfall/internal/report"
)

func newTestStore(t *testing.T) *AuditStore {
	t.Helper()

	store, err := NewAuditStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testRun(id string, canProceed bool) *audit.Run {
	blocking := 1
	var warnings []model.Warning
	if canProceed {
		blocking = 0
	} else {
		warnings = append(warnings, model.Warning{
			Code:      model.CodeTBCValue,
			Severity:  model.SeverityBlocking,
			Message:   "non-deterministic value",
			RowNumber: 3,
		})
	}

	return &audit.Run{
		ID:         id,
		CreatedAt:  time.Now().UTC(),
		SourceFile: "creditors.csv",
		FileHash:   "abc123",
		Report: report.Report{
			TotalRows:     5,
			ValidRows:     5 - blocking,
			BlockingCount: blocking,
			CanProceed:    canProceed,
			Warnings:      warnings,
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, testRun("run-1", false)))

	summary, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "creditors.csv", summary.SourceFile)
	assert.Equal(t, 5, summary.TotalRows)
	assert.Equal(t, 1, summary.BlockingCount)
	assert.False(t, summary.CanProceed)

	warnings, err := store.GetWarnings(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.CodeTBCValue, warnings[0].Code)
	assert.Equal(t, 3, warnings[0].RowNumber)
	assert.True(t, warnings[0].IsBlocking())
}

func TestGetRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testRun("run-1", true)
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.SaveRun(ctx, first))
	require.NoError(t, store.SaveRun(ctx, testRun("run-2", false)))

	summaries, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "run-2", summaries[0].ID, "newest first")
}

func TestSetVerificationCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, testRun("clear", true)))
	require.NoError(t, store.SaveRun(ctx, testRun("blocked", false)))

	require.NoError(t, store.SetVerificationCode(ctx, "clear", "FB-ABCDEF-GHJK"))
	summary, err := store.GetRun(ctx, "clear")
	require.NoError(t, err)
	assert.Equal(t, "FB-ABCDEF-GHJK", summary.VerificationCode)

	err = store.SetVerificationCode(ctx, "blocked", "FB-XXXXXX-XXXX")
	assert.True(t, errors.Is(err, common.ErrLedgerBlocked),
		"blocked ledgers must not be certifiable")
}
