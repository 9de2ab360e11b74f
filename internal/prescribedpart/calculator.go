// Package prescribedpart implements the Section 176A Insolvency Act 1986
// prescribed part: the slice of net floating-charge realisations reserved
// for unsecured creditors.
//
// Formula: 50% of the first £10,000 of net property, plus 20% of the
// remainder, subject to a cap fixed by the floating charge date.
package prescribedpart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the full audit-displayable outcome of a prescribed part
// calculation.
type Result struct {
	DistributionDate time.Time       `json:"distribution_date"`
	LegislativeBasis string          `json:"legislative_basis"`
	Steps            []string        `json:"steps"`
	NetProperty      decimal.Decimal `json:"net_property"`
	FirstTranche     decimal.Decimal `json:"first_tranche"`
	SecondTranche    decimal.Decimal `json:"second_tranche"`
	UncappedTotal    decimal.Decimal `json:"uncapped_total"`
	Cap              decimal.Decimal `json:"cap"`
	FinalAmount      decimal.Decimal `json:"final_amount"`
	CapApplied       bool            `json:"cap_applied"`
}

// capBand is one entry in the date-versioned statutory cap table. Future
// amendments only add rows here.
type capBand struct {
	effective time.Time
	cap       decimal.Decimal
	basis     string
}

// Cap history for s.176A. Selection takes the latest band whose effective
// date is on or before the distribution date, so the 6 April 2020 boundary
// itself already uses the £800,000 cap.
var capBands = []capBand{
	{
		effective: time.Time{},
		cap:       decimal.NewFromInt(600_000),
		basis:     "Insolvency Act 1986 s.176A",
	},
	{
		effective: time.Date(2020, time.April, 6, 0, 0, 0, 0, time.UTC),
		cap:       decimal.NewFromInt(800_000),
		basis:     "Insolvency Act 1986 s.176A (as amended SI 2020/211)",
	},
}

var (
	lowerBandLimit = decimal.NewFromInt(10_000)
	lowerBandRate  = decimal.NewFromFloat(0.5)
	upperBandRate  = decimal.NewFromFloat(0.2)
)

// CapFor returns the statutory cap and legislative basis applicable to a
// distribution date.
func CapFor(date time.Time) (decimal.Decimal, string) {
	selected := capBands[0]
	for _, band := range capBands[1:] {
		if !date.Before(band.effective) {
			selected = band
		}
	}
	return selected.cap, selected.basis
}

// Calculate computes the prescribed part for a net property figure and
// distribution date. It is a pure function: non-positive net property
// yields zero, and the result never exceeds the applicable cap.
func Calculate(netProperty decimal.Decimal, date time.Time) Result {
	capAmount, basis := CapFor(date)
	result := Result{
		NetProperty:      netProperty,
		DistributionDate: date,
		Cap:              capAmount,
		LegislativeBasis: basis,
		FirstTranche:     decimal.Zero,
		SecondTranche:    decimal.Zero,
		UncappedTotal:    decimal.Zero,
		FinalAmount:      decimal.Zero,
	}

	if !netProperty.IsPositive() {
		result.Steps = append(result.Steps,
			fmt.Sprintf("net property £%s is not positive: no prescribed part", netProperty.StringFixed(2)))
		return result
	}

	result.Steps = append(result.Steps,
		fmt.Sprintf("net property £%s", netProperty.StringFixed(2)))

	lowerBase := decimal.Min(netProperty, lowerBandLimit)
	result.FirstTranche = lowerBase.Mul(lowerBandRate).RoundDown(2)
	result.Steps = append(result.Steps,
		fmt.Sprintf("first tranche: 50%% of £%s = £%s", lowerBase.StringFixed(2), result.FirstTranche.StringFixed(2)))

	remainder := netProperty.Sub(lowerBandLimit)
	if remainder.IsPositive() {
		result.SecondTranche = remainder.Mul(upperBandRate).RoundDown(2)
		result.Steps = append(result.Steps,
			fmt.Sprintf("second tranche: 20%% of £%s = £%s", remainder.StringFixed(2), result.SecondTranche.StringFixed(2)))
	}

	result.UncappedTotal = result.FirstTranche.Add(result.SecondTranche)
	result.CapApplied = result.UncappedTotal.GreaterThan(capAmount)
	result.FinalAmount = decimal.Min(result.UncappedTotal, capAmount)

	if result.CapApplied {
		result.Steps = append(result.Steps,
			fmt.Sprintf("cap check: £%s exceeds £%s cap, cap applied", result.UncappedTotal.StringFixed(2), capAmount.StringFixed(2)))
	} else {
		result.Steps = append(result.Steps,
			fmt.Sprintf("cap check: £%s within £%s cap", result.UncappedTotal.StringFixed(2), capAmount.StringFixed(2)))
	}

	return result
}
