// Package report consolidates the warnings produced by the sanitizer and
// classifier into a single integrity report that gates the distribution
// workflow. It performs no detection of its own.
package report

import (
	"fmt"

	"github.com/formalbridge/waterfall/internal/classify"
	"github.com/formalbridge/waterfall/internal/model"
	"github.com/formalbridge/waterfall/internal/sanitize"
)

// Row pairs a mapped creditor record with the sanitized form of its amount
// cell.
type Row struct {
	Record model.CreditorRecord `json:"record"`
	Cell   sanitize.Cell        `json:"cell"`
}

// Report is the consolidated integrity report for one uploaded ledger.
// CanProceed is the single gate for workflow progression: one blocking
// warning anywhere halts certification no matter how many advisories exist.
type Report struct {
	Warnings      []model.Warning `json:"warnings"`
	Summary       []string        `json:"summary"`
	TotalRows     int             `json:"total_rows"`
	ValidRows     int             `json:"valid_rows"`
	BlockingCount int             `json:"blocking_count"`
	AdvisoryCount int             `json:"advisory_count"`
	CanProceed    bool            `json:"can_proceed"`
}

// Build merges all row-level warnings into one report. Ordering is
// deterministic: amount warnings in row order, then classification
// warnings, then duplicate groups.
func Build(rows []Row, classification classify.Result, duplicates []sanitize.DuplicateGroup) Report {
	r := Report{TotalRows: len(rows)}

	for _, row := range rows {
		if row.Cell.Valid {
			r.ValidRows++
		}
		for _, w := range row.Cell.Warnings {
			w.RowNumber = row.Record.RowNumber
			r.Warnings = append(r.Warnings, w)
		}
	}

	for _, w := range classification.Warnings {
		r.Warnings = append(r.Warnings, w.ToModel())
	}

	for _, g := range duplicates {
		r.Warnings = append(r.Warnings, g.Warning())
	}

	for _, w := range r.Warnings {
		if w.IsBlocking() {
			r.BlockingCount++
		} else {
			r.AdvisoryCount++
		}
	}

	r.CanProceed = r.BlockingCount == 0
	r.Summary = summarize(r, len(duplicates))
	return r
}

func summarize(r Report, duplicateGroups int) []string {
	var lines []string
	if r.BlockingCount > 0 {
		lines = append(lines, fmt.Sprintf("%d %s require correction before certification",
			r.BlockingCount, plural(r.BlockingCount, "value", "values")))
	}
	if r.AdvisoryCount > 0 {
		lines = append(lines, fmt.Sprintf("%d %s flagged for review",
			r.AdvisoryCount, plural(r.AdvisoryCount, "item", "items")))
	}
	if duplicateGroups > 0 {
		lines = append(lines, fmt.Sprintf("%d potential %s detected",
			duplicateGroups, plural(duplicateGroups, "duplicate", "duplicates")))
	}
	if len(lines) == 0 {
		lines = append(lines, "all values validated successfully")
	}
	return lines
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
