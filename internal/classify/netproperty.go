package classify

import (
	"github.com/shopspring/decimal"

	"github.com/formalbridge/waterfall/internal/model"
)

// NetProperty summarizes the asset pool left after fixed charge holders,
// the figure the prescribed part is computed from.
type NetProperty struct {
	NetProperty       decimal.Decimal `json:"net_property"`
	FixedChargesTotal decimal.Decimal `json:"fixed_charges_total"`
	PreferentialTotal decimal.Decimal `json:"preferential_total"`
}

// CalculateNetProperty derives net property from total realisable assets
// and the classified ledger: assets minus tier-1 fixed charges, floored at
// zero. The preferential total (tiers 2, 3a, 3b) is reported alongside for
// the waterfall display.
func CalculateNetProperty(totalAssets decimal.Decimal, creditors model.Ledger) NetProperty {
	fixed := decimal.Zero
	preferential := decimal.Zero

	for _, c := range creditors {
		tier, ok := c.Tier()
		if !ok {
			continue
		}
		switch tier {
		case model.TierFixedCharge:
			fixed = fixed.Add(c.Amount)
		case model.TierPreFA2020Pref, model.TierEmployeePref, model.TierCrownPref:
			preferential = preferential.Add(c.Amount)
		}
	}

	net := totalAssets.Sub(fixed)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return NetProperty{
		NetProperty:       net,
		FixedChargesTotal: fixed,
		PreferentialTotal: preferential,
	}
}
