package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/formalbridge/waterfall/internal/model"
)

func TestCalculateNetProperty(t *testing.T) {
	ledger := model.Ledger{
		creditor(1, "Barclays Fixed Charge", 150000, "1"),
		creditor(2, "HMRC VAT", 40000, "3b"),
		creditor(3, "Arrears of Pay", 5000, "3a"),
		creditor(4, "Trade Supplier", 25000, "6"),
		creditor(5, "Unknown tier", 1000, "??"),
	}

	np := CalculateNetProperty(decimal.NewFromInt(500000), ledger)

	assert.True(t, np.FixedChargesTotal.Equal(decimal.NewFromInt(150000)))
	assert.True(t, np.PreferentialTotal.Equal(decimal.NewFromInt(45000)))
	assert.True(t, np.NetProperty.Equal(decimal.NewFromInt(350000)))
}

func TestCalculateNetProperty_FlooredAtZero(t *testing.T) {
	ledger := model.Ledger{
		creditor(1, "Mortgage Debenture", 800000, "1"),
	}

	np := CalculateNetProperty(decimal.NewFromInt(100000), ledger)
	assert.True(t, np.NetProperty.IsZero())
}
