// Package model defines the core data structures for the waterfall engine.
package model

// Severity indicates whether a data-quality warning blocks certification.
type Severity string

// Severity constants. Blocking warnings halt workflow progression;
// advisory warnings are informational only.
const (
	SeverityBlocking Severity = "blocking"
	SeverityAdvisory Severity = "advisory"
)

// Warning codes emitted by the sanitizer and classifier.
const (
	CodeTBCValue         = "TBC_VALUE"
	CodeApproxValue      = "APPROX_VALUE"
	CodeUnparseableValue = "UNPARSEABLE_VALUE"
	CodeContraDetected   = "CONTRA_DETECTED"
	CodeCurrencyStripped = "CURRENCY_STRIPPED"
	CodeZeroAmount       = "ZERO_AMOUNT"
	CodeNegativeAmount   = "NEGATIVE_AMOUNT"

	CodeEmptyDate          = "EMPTY_DATE"
	CodeInvalidDate        = "INVALID_DATE"
	CodeUnrecognizedFormat = "UNRECOGNIZED_FORMAT"
	CodeYearInferred       = "YEAR_INFERRED"

	CodeCrownPreferenceGap = "CROWN_PREFERENCE_GAP"
	CodePreferentialGap    = "PREFERENTIAL_GAP"
	CodeWagesThreshold     = "WAGES_THRESHOLD"
	CodeDuplicateEntry     = "DUPLICATE_ENTRY"
)

// Warning represents a single disclosed data-quality issue. Issues are
// surfaced as values, never as errors: malformed user data is a business
// condition, not a caller bug.
type Warning struct {
	Code         string   `json:"code"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Suggestion   string   `json:"suggestion,omitempty"`
	StatutoryRef string   `json:"statutory_ref,omitempty"`
	RowNumber    int      `json:"row_number,omitempty"`
}

// IsBlocking reports whether this warning prevents certificate issuance.
func (w Warning) IsBlocking() bool {
	return w.Severity == SeverityBlocking
}
