// Package privacy removes personally identifiable information from
// spreadsheet data before any row leaves the ingest layer. Creditor names,
// amounts, dates and tiers are kept; addresses, bank details and contact
// details are dropped column-wise.
package privacy

import (
	"fmt"
	"regexp"
	"strings"
)

// UK-centric PII value patterns.
var piiPatterns = map[string]*regexp.Regexp{
	"postcode":       regexp.MustCompile(`(?i)\b[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d[A-Z]{2}\b`),
	"sort code":      regexp.MustCompile(`\b\d{2}[-\s]\d{2}[-\s]\d{2}\b`),
	"account number": regexp.MustCompile(`\b\d{8}\b`),
	"phone":          regexp.MustCompile(`\b(0\d{10}|\+44\s?\d{10}|\d{4}\s\d{3}\s\d{4})\b`),
	"email":          regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	"iban":           regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`),
}

// Column headings that are dropped on name alone.
var piiColumnNames = []string{
	"address", "addr", "street", "road", "postcode", "post code", "zip",
	"sort code", "sortcode", "account number", "account no", "bank account",
	"phone", "telephone", "mobile", "fax",
	"email", "e-mail", "e mail",
	"iban", "bic", "swift",
	"national insurance", "ni number", "nino",
}

// StripResult reports which columns were removed and why.
type StripResult struct {
	Headers         []string   `json:"headers"`
	Rows            [][]string `json:"rows"`
	StrippedColumns []string   `json:"stripped_columns"`
	Warnings        []string   `json:"warnings"`
}

func isPiiColumnName(header string) bool {
	lower := strings.ToLower(header)
	for _, name := range piiColumnNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// columnPiiKind inspects a column's values and returns the matched PII
// kind when more than half of the non-empty cells look like PII.
func columnPiiKind(values []string) (string, bool) {
	counts := make(map[string]int)
	nonEmpty := 0

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		nonEmpty++
		for kind, re := range piiPatterns {
			if re.MatchString(v) {
				counts[kind]++
			}
		}
	}

	if nonEmpty == 0 {
		return "", false
	}
	for kind, n := range counts {
		if n*2 > nonEmpty {
			return kind, true
		}
	}
	return "", false
}

// Strip removes PII columns from tabular data, returning the cleaned
// headers/rows plus a disclosure of everything removed. Protected columns
// (the ones the caller mapped to name/amount/tier) are never stripped even
// if their free-text values trip a pattern.
func Strip(headers []string, rows [][]string, protected map[int]bool) StripResult {
	result := StripResult{}
	drop := make(map[int]bool)

	for i, header := range headers {
		if protected[i] {
			continue
		}
		if isPiiColumnName(header) {
			drop[i] = true
			result.StrippedColumns = append(result.StrippedColumns, header)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("column %q removed: header indicates personal data", header))
			continue
		}

		var values []string
		for _, row := range rows {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		if kind, ok := columnPiiKind(values); ok {
			drop[i] = true
			result.StrippedColumns = append(result.StrippedColumns, header)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("column %q removed: values match %s pattern", header, kind))
		}
	}

	for i, header := range headers {
		if !drop[i] {
			result.Headers = append(result.Headers, header)
		}
	}
	for _, row := range rows {
		var cleaned []string
		for i := range headers {
			if drop[i] {
				continue
			}
			if i < len(row) {
				cleaned = append(cleaned, row[i])
			} else {
				cleaned = append(cleaned, "")
			}
		}
		result.Rows = append(result.Rows, cleaned)
	}

	return result
}
