// Package ingest reads uploaded creditor ledgers (CSV or XLSX) into the
// ordered raw rows the audit engine consumes. Column mapping is resolved
// from explicit header names or by alias detection, and PII columns are
// stripped before data goes any further.
package ingest

import (
	"fmt"
	"strings"

	"github.com/formalbridge/waterfall/internal/common"
)

// ColumnMapping names the ledger columns holding the three mapped fields.
// Empty values fall back to header alias detection.
type ColumnMapping struct {
	Name   string
	Amount string
	Tier   string
}

// Header aliases tried, in order, when a column is not named explicitly.
var (
	nameAliases   = []string{"creditor name", "creditor", "name", "supplier", "payee"}
	amountAliases = []string{"amount", "claim amount", "claim", "value", "balance", "total"}
	tierAliases   = []string{"tier", "classification", "class", "priority", "category"}
)

// resolvedMapping holds the column indexes after header resolution.
type resolvedMapping struct {
	name   int
	amount int
	tier   int
}

func findColumn(headers []string, explicit string, aliases []string) (int, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	if explicit != "" {
		want := strings.ToLower(strings.TrimSpace(explicit))
		for i, h := range normalized {
			if h == want {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %q", common.ErrMissingColumn, explicit)
	}

	for _, alias := range aliases {
		for i, h := range normalized {
			if h == alias {
				return i, nil
			}
		}
	}
	// Second pass: substring match, so "Claim Amount (£)" still resolves.
	for _, alias := range aliases {
		for i, h := range normalized {
			if strings.Contains(h, alias) {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: no header matching %v", common.ErrMissingColumn, aliases)
}

func resolveMapping(headers []string, mapping ColumnMapping) (resolvedMapping, error) {
	var resolved resolvedMapping
	var err error

	if resolved.name, err = findColumn(headers, mapping.Name, nameAliases); err != nil {
		return resolved, err
	}
	if resolved.amount, err = findColumn(headers, mapping.Amount, amountAliases); err != nil {
		return resolved, err
	}
	// Tier is optional: ledgers without one default every row to unsecured.
	resolved.tier, _ = findColumn(headers, mapping.Tier, tierAliases)
	if mapping.Tier != "" && resolved.tier < 0 {
		return resolved, fmt.Errorf("%w: %q", common.ErrMissingColumn, mapping.Tier)
	}

	return resolved, nil
}
