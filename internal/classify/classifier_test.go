package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formalbridge/waterfall/internal/model"
)

func creditor(row int, name string, amount int64, tier string) model.CreditorRecord {
	return model.CreditorRecord{
		RowNumber:   row,
		Name:        name,
		Amount:      decimal.NewFromInt(amount),
		CurrentTier: tier,
	}
}

func TestAnalyzeClassifications_CrownPreference(t *testing.T) {
	tests := []struct {
		name     string
		creditor string
		rule     string
	}{
		{name: "HMRC", creditor: "HMRC Corporation Tax", rule: "Corporation Tax"},
		{name: "VAT", creditor: "VAT Liability Q4", rule: "VAT"},
		{name: "PAYE", creditor: "PAYE Settlement", rule: "PAYE"},
		{name: "NIC", creditor: "National Insurance Contributions", rule: "National Insurance"},
		{name: "CIS", creditor: "CIS Deductions 2023", rule: "CIS"},
		{name: "HM Revenue", creditor: "HM Revenue & Customs", rule: "HMRC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnalyzeClassifications(model.Ledger{
				creditor(1, tt.creditor, 100000, "6"),
			})

			require.NotEmpty(t, result.Warnings)
			w := result.Warnings[0]
			assert.Equal(t, model.TierCrownPref, w.SuggestedTier)
			assert.Equal(t, tt.rule, w.Rule)
			assert.Equal(t, model.SeverityBlocking, w.Severity)
			assert.Equal(t, 1, w.RowNumber)
			assert.True(t, result.CrownGapTotal.Equal(decimal.NewFromInt(100000)))
		})
	}
}

func TestAnalyzeClassifications_EmployeePreferential(t *testing.T) {
	result := AnalyzeClassifications(model.Ledger{
		creditor(3, "Arrears of Pay - J. Smith", 650, "6"),
	})

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.TierEmployeePref, result.Warnings[0].SuggestedTier)
	assert.True(t, result.WagesGapTotal.Equal(decimal.NewFromInt(650)))
}

func TestAnalyzeClassifications_HolidayInnFalsePositive(t *testing.T) {
	result := AnalyzeClassifications(model.Ledger{
		creditor(1, "Holiday Inn Conference", 12500, "6"),
	})

	for _, w := range result.Warnings {
		assert.NotEqual(t, model.TierEmployeePref, w.SuggestedTier,
			"a hotel invoice is not accrued holiday pay")
	}
}

func TestAnalyzeClassifications_CompanyNameGuard(t *testing.T) {
	// Keyword inside a trading name is not a statutory claim.
	ledger := model.Ledger{
		creditor(1, "VAT Solutions Ltd", 4000, "6"),
		creditor(2, "Wageworks Ltd", 9000, "6"),
		creditor(3, "Pension Consultants Group", 2500, "6"),
	}

	result := AnalyzeClassifications(ledger)
	assert.Empty(t, result.Warnings)
}

func TestAnalyzeClassifications_WagesThreshold(t *testing.T) {
	// Above the £800 cap and correctly preferential: the split advisory
	// applies, nothing blocks.
	result := AnalyzeClassifications(model.Ledger{
		creditor(1, "Employee Wages - K. Patel", 1250, "3a"),
	})
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.SeverityAdvisory, result.Warnings[0].Severity)
	assert.Equal(t, "Wages Threshold", result.Warnings[0].Rule)
	assert.True(t, result.TotalAtRisk().IsZero())

	// At or below the cap: no advisory.
	result = AnalyzeClassifications(model.Ledger{
		creditor(1, "Employee Wages - K. Patel", 800, "3a"),
	})
	assert.Empty(t, result.Warnings)

	// Above the cap and unsecured: blocking reclassification, and the
	// advisory stays suppressed because the row is already flagged.
	result = AnalyzeClassifications(model.Ledger{
		creditor(1, "Employee Wages - K. Patel", 1250, "6"),
	})
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.SeverityBlocking, result.Warnings[0].Severity)
	assert.Equal(t, model.TierEmployeePref, result.Warnings[0].SuggestedTier)
}

func TestAnalyzeClassifications_CorrectTierNotFlagged(t *testing.T) {
	ledger := model.Ledger{
		creditor(1, "HMRC VAT", 50000, "3b"),
		creditor(2, "HMRC VAT", 50000, "Secondary Preferential (Crown)"),
	}

	result := AnalyzeClassifications(ledger)
	assert.Empty(t, result.Warnings)
}

func TestAnalyzeClassifications_MultipleReferencesReported(t *testing.T) {
	// A name matching both a Crown and an employee pattern reports both
	// statutory references independently.
	result := AnalyzeClassifications(model.Ledger{
		creditor(1, "PAYE on wages arrears", 20000, "6"),
	})

	refs := make(map[model.TierCode]bool)
	for _, w := range result.Warnings {
		refs[w.SuggestedTier] = true
	}
	assert.True(t, refs[model.TierCrownPref])
	assert.True(t, refs[model.TierEmployeePref])
}

func TestAnalyzeClassifications_NoDuplicatePerRowAndReference(t *testing.T) {
	// HMRC + VAT + PAYE in one name still yields a single 3b warning.
	result := AnalyzeClassifications(model.Ledger{
		creditor(1, "HMRC VAT and PAYE liabilities", 75000, "6"),
	})

	count := 0
	for _, w := range result.Warnings {
		if w.SuggestedTier == model.TierCrownPref {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAnalyzeClassifications_TotalAtRisk(t *testing.T) {
	result := AnalyzeClassifications(model.Ledger{
		creditor(1, "HMRC VAT", 60000, "6"),
		creditor(2, "Holiday Pay Accrual", 1500, "6"),
	})

	assert.True(t, result.TotalAtRisk().Equal(decimal.NewFromInt(61500)),
		"got %s", result.TotalAtRisk())
}

func TestApplyCorrections(t *testing.T) {
	ledger := model.Ledger{
		creditor(1, "HMRC VAT", 60000, "6"),
		creditor(2, "Ordinary Supplier", 500, "6"),
	}

	result := AnalyzeClassifications(ledger)
	corrected := ApplyCorrections(ledger, result.Warnings)

	assert.Equal(t, "3b", corrected[0].CurrentTier)
	assert.Equal(t, "6", corrected[1].CurrentTier)
	// Input untouched.
	assert.Equal(t, "6", ledger[0].CurrentTier)
}

func TestWarningToModel(t *testing.T) {
	result := AnalyzeClassifications(model.Ledger{
		creditor(4, "HMRC PAYE", 1000, "6"),
	})
	require.Len(t, result.Warnings, 1)

	w := result.Warnings[0].ToModel()
	assert.Equal(t, model.CodeCrownPreferenceGap, w.Code)
	assert.Equal(t, "3b", w.StatutoryRef)
	assert.Equal(t, 4, w.RowNumber)
	assert.True(t, w.IsBlocking())
}
