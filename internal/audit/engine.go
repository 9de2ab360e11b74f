// Package audit orchestrates a full statutory distribution audit: ingest,
// per-cell sanitization, tier classification, duplicate detection, the
// consolidated integrity report, and (when the ledger is clear) the
// prescribed part calculation.
package audit

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"github.com/formalbridge/waterfall/internal/certify"
	"github.com/formalbridge/waterfall/internal/classify"
	"github.com/formalbridge/waterfall/internal/ingest"
	"github.com/formalbridge/waterfall/internal/model"
	"github.com/formalbridge/waterfall/internal/prescribedpart"
	"github.com/formalbridge/waterfall/internal/report"
	"github.com/formalbridge/waterfall/internal/sanitize"
)

// Options configures a single audit run.
type Options struct {
	Mapping          ingest.ColumnMapping
	DistributionDate time.Time        // zero value: skip the prescribed part
	TotalAssets      *decimal.Decimal // derive net property from the ledger
	NetProperty      *decimal.Decimal // use this net property figure directly
	ShowProgress     bool
}

// Run captures everything produced by one audit of one ledger file.
type Run struct {
	CreatedAt      time.Time                 `json:"created_at"`
	ID             string                    `json:"id"`
	SourceFile     string                    `json:"source_file"`
	FileHash       string                    `json:"file_hash"`
	Ledger         model.Ledger              `json:"ledger"`
	Rows           []report.Row              `json:"rows"`
	Classification classify.Result           `json:"classification"`
	Duplicates     []sanitize.DuplicateGroup `json:"duplicates,omitempty"`
	Report         report.Report             `json:"report"`
	NetProperty    *classify.NetProperty     `json:"net_property,omitempty"`
	PrescribedPart *prescribedpart.Result    `json:"prescribed_part,omitempty"`
}

// Execute runs the full audit pipeline over a ledger file.
func Execute(path string, opts Options) (*Run, error) {
	hash, err := certify.HashFile(path)
	if err != nil {
		return nil, err
	}

	ledgerFile, err := ingest.ReadFile(path, opts.Mapping)
	if err != nil {
		return nil, err
	}

	slog.Info("ledger ingested",
		"file", path,
		"rows", len(ledgerFile.Rows),
		"stripped_columns", len(ledgerFile.StrippedColumns))

	run := &Run{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		SourceFile: path,
		FileHash:   hash,
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(ledgerFile.Rows)), "sanitizing")
	}

	for _, raw := range ledgerFile.Rows {
		cell := sanitize.SanitizeAmount(raw.Amount)
		record := model.CreditorRecord{
			RowNumber:   raw.Number,
			Name:        raw.Name,
			Amount:      cell.Value,
			CurrentTier: raw.Tier,
		}
		run.Ledger = append(run.Ledger, record)
		run.Rows = append(run.Rows, report.Row{Record: record, Cell: cell})
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	run.Classification = classify.AnalyzeClassifications(run.Ledger)
	run.Duplicates = sanitize.DetectDuplicates(run.Ledger)
	run.Report = report.Build(run.Rows, run.Classification, run.Duplicates)

	slog.Info("integrity report built",
		"blocking", run.Report.BlockingCount,
		"advisory", run.Report.AdvisoryCount,
		"can_proceed", run.Report.CanProceed)

	if run.Report.CanProceed && !opts.DistributionDate.IsZero() {
		net, ok := resolveNetProperty(run, opts)
		if ok {
			pp := prescribedpart.Calculate(net, opts.DistributionDate)
			run.PrescribedPart = &pp
			slog.Info("prescribed part calculated",
				"net_property", net.String(),
				"final_amount", pp.FinalAmount.String(),
				"cap_applied", pp.CapApplied)
		}
	}

	return run, nil
}

// resolveNetProperty picks the net property figure: an explicit figure
// wins, otherwise it is derived from total assets and the classified
// ledger.
func resolveNetProperty(run *Run, opts Options) (decimal.Decimal, bool) {
	if opts.NetProperty != nil {
		return *opts.NetProperty, true
	}
	if opts.TotalAssets != nil {
		np := classify.CalculateNetProperty(*opts.TotalAssets, run.Ledger)
		run.NetProperty = &np
		return np.NetProperty, true
	}
	return decimal.Zero, false
}
