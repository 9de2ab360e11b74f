package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/formalbridge/waterfall/internal/common"
	"github.com/formalbridge/waterfall/internal/privacy"
)

// RawRow is one data row of the uploaded ledger, reduced to the three
// mapped fields. Number is 1-based over data rows (the header is row 0).
type RawRow struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Tier   string `json:"tier"`
	Number int    `json:"number"`
}

// DefaultTier is assumed when a ledger carries no tier column: everything
// is unsecured until the practitioner says otherwise.
const DefaultTier = "6"

// LedgerFile is a fully ingested ledger upload.
type LedgerFile struct {
	Path            string   `json:"path"`
	Headers         []string `json:"headers"`
	Rows            []RawRow `json:"rows"`
	StrippedColumns []string `json:"stripped_columns,omitempty"`
	PIIWarnings     []string `json:"pii_warnings,omitempty"`
}

// ReadFile ingests a ledger file, dispatching on extension. Only .csv and
// .xlsx are supported.
func ReadFile(path string, mapping ColumnMapping) (*LedgerFile, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = readCSV(path)
	case ".xlsx":
		records, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedExt, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return buildLedger(path, records, mapping)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are a data-quality issue, not a parse failure
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.ErrEmptyLedger
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func buildLedger(path string, records [][]string, mapping ColumnMapping) (*LedgerFile, error) {
	if len(records) < 2 {
		return nil, common.ErrEmptyLedger
	}

	headers := records[0]
	data := records[1:]

	resolved, err := resolveMapping(headers, mapping)
	if err != nil {
		return nil, err
	}

	protected := map[int]bool{resolved.name: true, resolved.amount: true}
	if resolved.tier >= 0 {
		protected[resolved.tier] = true
	}
	stripped := privacy.Strip(headers, data, protected)

	ledger := &LedgerFile{
		Path:            path,
		Headers:         headers,
		StrippedColumns: stripped.StrippedColumns,
		PIIWarnings:     stripped.Warnings,
	}

	for i, record := range data {
		row := RawRow{
			Number: i + 1,
			Name:   cellAt(record, resolved.name),
			Amount: cellAt(record, resolved.amount),
			Tier:   DefaultTier,
		}
		if resolved.tier >= 0 {
			if tier := strings.TrimSpace(cellAt(record, resolved.tier)); tier != "" {
				row.Tier = tier
			}
		}

		// Fully blank rows are spreadsheet padding, not claims.
		if row.Name == "" && strings.TrimSpace(row.Amount) == "" {
			continue
		}
		ledger.Rows = append(ledger.Rows, row)
	}

	if len(ledger.Rows) == 0 {
		return nil, common.ErrEmptyLedger
	}
	return ledger, nil
}

func cellAt(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}
