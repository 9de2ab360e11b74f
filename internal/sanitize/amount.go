// Package sanitize normalizes the messy free-text values found in real
// creditor spreadsheets. Every transformation is disclosed as a Warning so
// the audit trail shows exactly what was cleaned, and anything that cannot
// support a statutory certificate is flagged as blocking rather than
// silently guessed at.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/formalbridge/waterfall/internal/model"
)

// Cell is the sanitized form of a single monetary spreadsheet cell.
type Cell struct {
	Raw      string          `json:"raw"`
	Value    decimal.Decimal `json:"value"`
	Warnings []model.Warning `json:"warnings,omitempty"`
	Valid    bool            `json:"valid"`
}

// HasBlocking reports whether any warning on this cell blocks certification.
func (c Cell) HasBlocking() bool {
	for _, w := range c.Warnings {
		if w.IsBlocking() {
			return true
		}
	}
	return false
}

// To-be-confirmed markers. A cell carrying any of these has no definite
// value and always blocks certification.
var tbcMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btbc\b`),
	regexp.MustCompile(`(?i)\btba\b`),
	regexp.MustCompile(`(?i)^n/?a$`),
	regexp.MustCompile(`(?i)\bunknown\b`),
	regexp.MustCompile(`(?i)\bpending\b`),
	regexp.MustCompile(`(?i)\bsee\s+note`),
	regexp.MustCompile(`\?`),
}

// Approximation qualifiers. The magnitude is still extracted for display,
// but an approximate figure cannot support a statutory distribution.
var approxMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bapprox(?:imately)?\.?`),
	regexp.MustCompile(`(?i)\bcirca\b`),
	regexp.MustCompile(`(?i)\bestimate[ds]?\b`),
	regexp.MustCompile(`(?i)\best\.`),
	regexp.MustCompile(`(?i)\bc\.\s`),
	regexp.MustCompile(`~`),
}

var (
	currencySymbols = regexp.MustCompile(`[£$€¥]`)
	negativeParens  = regexp.MustCompile(`^\s*\(([^)]+)\)\s*$`)
	strayChars      = regexp.MustCompile(`[^0-9.\-]`)
)

// SanitizeAmount parses a raw monetary cell into a signed decimal amount
// plus the ordered list of data-quality warnings detected along the way.
// It never fails: all anomalies surface as warnings on the returned Cell.
func SanitizeAmount(raw string) Cell {
	cell := Cell{Raw: raw}
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:       model.CodeTBCValue,
			Severity:   model.SeverityBlocking,
			Message:    "amount field is empty",
			Suggestion: "enter an exact numeric value",
		})
		return cell
	}

	for _, re := range tbcMarkers {
		if re.MatchString(trimmed) {
			cell.Warnings = append(cell.Warnings, model.Warning{
				Code:       model.CodeTBCValue,
				Severity:   model.SeverityBlocking,
				Message:    fmt.Sprintf("non-deterministic value %q", trimmed),
				Suggestion: "replace with an exact numeric amount before certification",
			})
			return cell
		}
	}

	working := trimmed
	approximate := false
	for _, re := range approxMarkers {
		if re.MatchString(working) {
			approximate = true
			working = re.ReplaceAllString(working, "")
		}
	}

	if currencySymbols.MatchString(working) {
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:     model.CodeCurrencyStripped,
			Severity: model.SeverityAdvisory,
			Message:  "currency symbol removed",
		})
		working = currencySymbols.ReplaceAllString(working, "")
	}

	// Accounting convention: (5000) means -5000.
	if m := negativeParens.FindStringSubmatch(working); m != nil {
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:       model.CodeContraDetected,
			Severity:   model.SeverityAdvisory,
			Message:    "negative/contra amount detected",
			Suggestion: "verify this represents a contra entry or credit balance",
		})
		working = "-" + m[1]
	}

	working = strings.ReplaceAll(working, ",", "")
	working = strayChars.ReplaceAllString(working, "")

	value, err := decimal.NewFromString(working)
	if err != nil {
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:       model.CodeUnparseableValue,
			Severity:   model.SeverityBlocking,
			Message:    fmt.Sprintf("could not parse %q as a number", trimmed),
			Suggestion: "enter a valid numeric amount",
		})
		return cell
	}

	if approximate {
		cell.Value = value
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:       model.CodeApproxValue,
			Severity:   model.SeverityBlocking,
			Message:    fmt.Sprintf("approximate value %q cannot support a statutory certificate", trimmed),
			Suggestion: "replace with the exact claim amount",
		})
		return cell
	}

	cell.Value = value
	cell.Valid = true

	if value.IsZero() {
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:       model.CodeZeroAmount,
			Severity:   model.SeverityAdvisory,
			Message:    "amount is zero",
			Suggestion: "verify this is intentional (e.g. fully paid claim)",
		})
	}
	if value.IsNegative() {
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:       model.CodeNegativeAmount,
			Severity:   model.SeverityAdvisory,
			Message:    "negative amount may require netting before distribution",
			Suggestion: "review contra entries before proceeding",
		})
	}

	return cell
}
