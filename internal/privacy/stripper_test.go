package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip_ByHeaderName(t *testing.T) {
	headers := []string{"Creditor", "Amount", "Home Address", "NI Number"}
	rows := [][]string{
		{"Supplier A", "1000", "1 High Street", "QQ123456C"},
	}

	result := Strip(headers, rows, map[int]bool{0: true, 1: true})

	assert.ElementsMatch(t, []string{"Home Address", "NI Number"}, result.StrippedColumns)
	assert.Equal(t, []string{"Creditor", "Amount"}, result.Headers)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, []string{"Supplier A", "1000"}, result.Rows[0])
}

func TestStrip_ByValuePattern(t *testing.T) {
	headers := []string{"Creditor", "Amount", "Contact"}
	rows := [][]string{
		{"Supplier A", "1000", "alice@example.com"},
		{"Supplier B", "2000", "bob@example.com"},
	}

	result := Strip(headers, rows, map[int]bool{0: true, 1: true})

	assert.Contains(t, result.StrippedColumns, "Contact")
	assert.Equal(t, []string{"Creditor", "Amount"}, result.Headers)
}

func TestStrip_ProtectedColumnsKept(t *testing.T) {
	// A creditor name that happens to contain a postcode-looking token must
	// survive: mapped columns are never stripped.
	headers := []string{"Creditor", "Amount"}
	rows := [][]string{
		{"SW1A 2AA Properties", "1000"},
	}

	result := Strip(headers, rows, map[int]bool{0: true, 1: true})

	assert.Empty(t, result.StrippedColumns)
	assert.Equal(t, headers, result.Headers)
}

func TestStrip_MinorityMatchesKept(t *testing.T) {
	// One stray PII-looking value among many clean ones does not condemn
	// the column.
	headers := []string{"Creditor", "Amount", "Notes"}
	rows := [][]string{
		{"A", "1", "payment plan agreed"},
		{"B", "2", "disputed"},
		{"C", "3", "call 0201 234 5678 re claim"},
		{"D", "4", "awaiting invoice"},
		{"E", "5", "none"},
	}

	result := Strip(headers, rows, map[int]bool{0: true, 1: true})

	assert.Empty(t, result.StrippedColumns)
}
