package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/formalbridge/waterfall/internal/model"
)

// DateCell is the sanitized form of a date cell from an uploaded ledger.
type DateCell struct {
	Raw      string          `json:"raw"`
	Value    time.Time       `json:"value"`
	Warnings []model.Warning `json:"warnings,omitempty"`
	Valid    bool            `json:"valid"`
}

// UK-first layouts, tried in order. time.Parse rejects impossible dates
// like 31/02/2024 for us.
var dateLayouts = []struct {
	layout       string
	twoDigitYear bool
}{
	{"02/01/2006", false},
	{"2/1/2006", false},
	{"02/01/06", true},
	{"2/1/06", true},
	{"02-01-2006", false},
	{"2-1-2006", false},
	{"2006-01-02", false},
	{"2 January 2006", false},
	{"2 Jan 2006", false},
	{"January 2, 2006", false},
	{"Jan 2, 2006", false},
	{"January 2 2006", false},
	{"Jan 2 2006", false},
}

var (
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	numericDate   = regexp.MustCompile(`^\d{1,4}[/-]\d{1,2}[/-]\d{1,4}$`)
)

// NormalizeDate parses a date cell in any of the common UK formats.
// Two-digit years follow the Go convention (69 and above are 19xx) and are
// disclosed with an advisory warning.
func NormalizeDate(raw string) DateCell {
	cell := DateCell{Raw: raw}
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		cell.Warnings = append(cell.Warnings, model.Warning{
			Code:     model.CodeEmptyDate,
			Severity: model.SeverityBlocking,
			Message:  "date field is empty",
		})
		return cell
	}

	cleaned := ordinalSuffix.ReplaceAllString(trimmed, "$1")

	for _, dl := range dateLayouts {
		parsed, err := time.Parse(dl.layout, cleaned)
		if err != nil {
			continue
		}

		if dl.twoDigitYear {
			cell.Warnings = append(cell.Warnings, model.Warning{
				Code:     model.CodeYearInferred,
				Severity: model.SeverityAdvisory,
				Message:  fmt.Sprintf("two-digit year interpreted as %d", parsed.Year()),
			})
		}

		cell.Value = parsed
		cell.Valid = true
		return cell
	}

	// A numeric shape that failed every layout is an impossible date
	// (e.g. 31/02/2024) rather than an unknown format.
	code := model.CodeUnrecognizedFormat
	if numericDate.MatchString(cleaned) {
		code = model.CodeInvalidDate
	}
	cell.Warnings = append(cell.Warnings, model.Warning{
		Code:       code,
		Severity:   model.SeverityBlocking,
		Message:    fmt.Sprintf("could not parse date %q", trimmed),
		Suggestion: "use DD/MM/YYYY format",
	})
	return cell
}
