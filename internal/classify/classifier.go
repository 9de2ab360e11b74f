package classify

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/formalbridge/waterfall/internal/model"
)

// Warning flags a single creditor whose entered tier conflicts with the
// statutory reference its name implies.
type Warning struct {
	CreditorName  string          `json:"creditor_name"`
	CurrentTier   string          `json:"current_tier"`
	Rule          string          `json:"rule"`
	Statute       string          `json:"statute"`
	Breach        string          `json:"breach"`
	Impact        string          `json:"impact"`
	SuggestedTier model.TierCode  `json:"suggested_tier"`
	Severity      model.Severity  `json:"severity"`
	Amount        decimal.Decimal `json:"amount"`
	RowNumber     int             `json:"row_number"`
}

// ToModel converts a classification warning into the common warning shape
// consumed by the integrity report.
func (w Warning) ToModel() model.Warning {
	code := model.CodePreferentialGap
	if w.SuggestedTier == model.TierCrownPref {
		code = model.CodeCrownPreferenceGap
	}
	if w.Severity == model.SeverityAdvisory {
		code = model.CodeWagesThreshold
	}
	return model.Warning{
		Code:         code,
		Severity:     w.Severity,
		Message:      w.Breach,
		Suggestion:   w.Impact,
		StatutoryRef: string(w.SuggestedTier),
		RowNumber:    w.RowNumber,
	}
}

// Result is the outcome of scanning a full ledger.
type Result struct {
	Warnings      []Warning       `json:"warnings"`
	CrownGapTotal decimal.Decimal `json:"crown_gap_total"`
	WagesGapTotal decimal.Decimal `json:"wages_gap_total"`
}

// TotalAtRisk is the sum the practitioner would misdistribute if every
// flagged claim stayed in its entered tier.
func (r Result) TotalAtRisk() decimal.Decimal {
	return r.CrownGapTotal.Add(r.WagesGapTotal)
}

// preferentialWagesCap is the Schedule 6 Para 9(c) per-employee cap on
// preferential wage claims.
var preferentialWagesCap = decimal.NewFromInt(800)

// AnalyzeClassifications scans every creditor name against the statutory
// rule table and reports tier conflicts. Each (row, statutory reference)
// pair is reported at most once; when a name matches both a Crown and an
// employee rule, both references are reported independently. The input is
// never mutated: reclassification is the caller's decision.
func AnalyzeClassifications(creditors model.Ledger) Result {
	result := Result{
		CrownGapTotal: decimal.Zero,
		WagesGapTotal: decimal.Zero,
	}
	rules := AllRules()
	seen := make(map[string]bool)

	for _, creditor := range creditors {
		currentTier, tierKnown := creditor.Tier()
		rowFlagged := false

		for _, rule := range rules {
			if !rule.Matches(creditor.Name) {
				continue
			}
			if tierKnown && currentTier == rule.Suggests {
				continue
			}

			key := fmt.Sprintf("%d:%s", creditor.RowNumber, rule.Suggests)
			if seen[key] {
				continue
			}
			seen[key] = true
			rowFlagged = true

			result.Warnings = append(result.Warnings, Warning{
				RowNumber:     creditor.RowNumber,
				CreditorName:  creditor.Name,
				Amount:        creditor.Amount,
				CurrentTier:   creditor.CurrentTier,
				SuggestedTier: rule.Suggests,
				Severity:      model.SeverityBlocking,
				Rule:          rule.Name,
				Statute:       rule.Statute,
				Breach: fmt.Sprintf("%s identified in tier %q; %s designates this claim as tier %s",
					rule.Name, creditor.CurrentTier, rule.Statute, rule.Suggests),
				Impact: fmt.Sprintf("£%s would rank ahead of unsecured creditors; distributing it in tier %q creates personal liability",
					creditor.Amount.StringFixed(2), creditor.CurrentTier),
			})

			switch rule.Suggests {
			case model.TierCrownPref:
				result.CrownGapTotal = result.CrownGapTotal.Add(creditor.Amount)
			case model.TierEmployeePref:
				result.WagesGapTotal = result.WagesGapTotal.Add(creditor.Amount)
			}
		}

		// Schedule 6 Para 9(c): a preferential wage claim above the £800
		// cap may need its excess splitting into tier 6. Advisory only,
		// and redundant when the row is already flagged for reclassification.
		if !rowFlagged &&
			creditor.Amount.GreaterThan(preferentialWagesCap) &&
			wagesPattern.MatchString(creditor.Name) &&
			!isLikelyCompanyName(creditor.Name) &&
			tierKnown && currentTier == model.TierEmployeePref {
			result.Warnings = append(result.Warnings, Warning{
				RowNumber:     creditor.RowNumber,
				CreditorName:  creditor.Name,
				Amount:        creditor.Amount,
				CurrentTier:   creditor.CurrentTier,
				SuggestedTier: model.TierEmployeePref,
				Severity:      model.SeverityAdvisory,
				Rule:          "Wages Threshold",
				Statute:       "IA1986 Sch.6 Para 9(c)",
				Breach:        "amount exceeds the £800 preferential cap per employee",
				Impact:        "the excess above £800 may need splitting between tiers 3a and 6",
			})
		}
	}

	return result
}

// ApplyCorrections returns a copy of the ledger with each flagged row moved
// to its suggested tier. The original ledger is untouched.
func ApplyCorrections(creditors model.Ledger, warnings []Warning) model.Ledger {
	suggested := make(map[int]model.TierCode, len(warnings))
	for _, w := range warnings {
		if w.Severity == model.SeverityBlocking {
			suggested[w.RowNumber] = w.SuggestedTier
		}
	}

	corrected := make(model.Ledger, len(creditors))
	for i, c := range creditors {
		if tier, ok := suggested[c.RowNumber]; ok {
			c.CurrentTier = string(tier)
		}
		corrected[i] = c
	}
	return corrected
}
