package sanitize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formalbridge/waterfall/internal/model"
)

func TestSanitizeAmount_ValidValues(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		codes []string
	}{
		{
			name:  "plain number",
			raw:   "12345",
			want:  "12345",
			codes: nil,
		},
		{
			name:  "currency symbol and thousands separators",
			raw:   "£10,500.50",
			want:  "10500.50",
			codes: []string{model.CodeCurrencyStripped},
		},
		{
			name:  "euro symbol",
			raw:   "€5,000",
			want:  "5000",
			codes: []string{model.CodeCurrencyStripped},
		},
		{
			name:  "very large amount",
			raw:   "999,999,999.99",
			want:  "999999999.99",
			codes: nil,
		},
		{
			name:  "surrounding whitespace",
			raw:   "  250.75  ",
			want:  "250.75",
			codes: nil,
		},
		{
			name:  "parenthesized contra entry",
			raw:   "(5,000)",
			want:  "-5000",
			codes: []string{model.CodeContraDetected, model.CodeNegativeAmount},
		},
		{
			name:  "zero amount",
			raw:   "0",
			want:  "0",
			codes: []string{model.CodeZeroAmount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := SanitizeAmount(tt.raw)

			assert.True(t, cell.Valid)
			expected, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, cell.Value.Equal(expected),
				"want %s, got %s", expected, cell.Value)
			assert.Equal(t, tt.codes, warningCodes(cell))
			assert.False(t, cell.HasBlocking(), "valid cells must carry no blocking warning")
		})
	}
}

func TestSanitizeAmount_BlockingValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code string
	}{
		{name: "TBC", raw: "TBC", code: model.CodeTBCValue},
		{name: "lowercase tbc", raw: "tbc amount", code: model.CodeTBCValue},
		{name: "TBA", raw: "TBA", code: model.CodeTBCValue},
		{name: "N/A", raw: "N/A", code: model.CodeTBCValue},
		{name: "see note reference", raw: "See Note 4", code: model.CodeTBCValue},
		{name: "pending", raw: "pending", code: model.CodeTBCValue},
		{name: "unknown", raw: "unknown", code: model.CodeTBCValue},
		{name: "question mark", raw: "5000?", code: model.CodeTBCValue},
		{name: "empty string", raw: "", code: model.CodeTBCValue},
		{name: "whitespace only", raw: "   ", code: model.CodeTBCValue},
		{name: "pure text", raw: "not a number", code: model.CodeUnparseableValue},
		{name: "lone minus", raw: "-", code: model.CodeUnparseableValue},
		{name: "lone currency symbol", raw: "£", code: model.CodeUnparseableValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := SanitizeAmount(tt.raw)

			assert.False(t, cell.Valid)
			assert.True(t, cell.HasBlocking())
			assert.Contains(t, warningCodes(cell), tt.code)
		})
	}
}

func TestSanitizeAmount_ApproximateValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "approx suffix", raw: "£48,000 approx", want: "48000"},
		{name: "approx with dot", raw: "approx. 1200", want: "1200"},
		{name: "tilde prefix", raw: "~500", want: "500"},
		{name: "circa", raw: "circa 7,500", want: "7500"},
		{name: "c dot abbreviation", raw: "c. 5,000", want: "5000"},
		{name: "estimated", raw: "estimated 900", want: "900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := SanitizeAmount(tt.raw)

			assert.False(t, cell.Valid, "approximate figures cannot support a certificate")
			assert.True(t, cell.HasBlocking())
			assert.Contains(t, warningCodes(cell), model.CodeApproxValue)

			// The magnitude is still extracted for display.
			expected, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, cell.Value.Equal(expected),
				"want %s, got %s", expected, cell.Value)
		})
	}
}

func TestSanitizeAmount_Idempotent(t *testing.T) {
	inputs := []string{"£10,500.50", "TBC", "(5,000)", "circa 7,500", "garbage", ""}

	for _, raw := range inputs {
		first := SanitizeAmount(raw)
		second := SanitizeAmount(raw)

		assert.Equal(t, first.Valid, second.Valid, "input %q", raw)
		assert.True(t, first.Value.Equal(second.Value), "input %q", raw)
		assert.Equal(t, warningCodes(first), warningCodes(second), "input %q", raw)
	}
}

func warningCodes(cell Cell) []string {
	var codes []string
	for _, w := range cell.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}
