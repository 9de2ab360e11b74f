package sanitize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formalbridge/waterfall/internal/model"
)

func TestDetectDuplicates(t *testing.T) {
	ledger := model.Ledger{
		{RowNumber: 1, Name: "Supplier A", Amount: decimal.NewFromInt(10000)},
		{RowNumber: 2, Name: "Acme Ltd", Amount: decimal.NewFromInt(500)},
		{RowNumber: 5, Name: "SUPPLIER A.", Amount: decimal.NewFromInt(10000)},
		{RowNumber: 7, Name: "Beta Partners", Amount: decimal.NewFromInt(2000)},
		{RowNumber: 8, Name: "Beta Partners", Amount: decimal.NewFromInt(3500)},
	}

	groups := DetectDuplicates(ledger)
	require.Len(t, groups, 2)

	// Punctuation and case differences normalize to the same name.
	assert.Equal(t, DuplicateNameAndAmount, groups[0].Type)
	require.Len(t, groups[0].Creditors, 2)
	assert.Equal(t, 1, groups[0].Creditors[0].RowNumber)
	assert.Equal(t, 5, groups[0].Creditors[1].RowNumber)

	assert.Equal(t, DuplicateNameOnly, groups[1].Type)

	// Duplicate findings never block on their own.
	for _, g := range groups {
		assert.Equal(t, model.SeverityAdvisory, g.Warning().Severity)
	}
}

func TestDetectDuplicates_NoDuplicates(t *testing.T) {
	ledger := model.Ledger{
		{RowNumber: 1, Name: "Supplier A", Amount: decimal.NewFromInt(100)},
		{RowNumber: 2, Name: "Supplier B", Amount: decimal.NewFromInt(100)},
	}

	assert.Empty(t, DetectDuplicates(ledger))
}
