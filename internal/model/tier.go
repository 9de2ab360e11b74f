package model

import "strings"

// TierCode identifies a statutory distribution priority class under the
// Insolvency Act 1986 waterfall.
type TierCode string

// Statutory tier constants, in distribution order.
const (
	TierFixedCharge    TierCode = "1"  // Fixed charge holders
	TierPreFA2020Pref  TierCode = "2"  // Preferential creditors (pre-FA2020)
	TierEmployeePref   TierCode = "3a" // Preferential creditors (employees)
	TierCrownPref      TierCode = "3b" // Secondary preferential (Crown, FA2020)
	TierPrescribedPart TierCode = "4"  // Prescribed part (s.176A)
	TierFloatingCharge TierCode = "5"  // Floating charge holders
	TierUnsecured      TierCode = "6"  // Unsecured creditors
	TierStatutoryInt   TierCode = "7"  // Statutory interest
	TierShareholders   TierCode = "8"  // Shareholders
)

var tierCodes = map[string]TierCode{
	"1": TierFixedCharge, "2": TierPreFA2020Pref,
	"3a": TierEmployeePref, "3b": TierCrownPref,
	"4": TierPrescribedPart, "5": TierFloatingCharge,
	"6": TierUnsecured, "7": TierStatutoryInt, "8": TierShareholders,
}

// ParseTier normalizes a practitioner-entered tier value to a TierCode.
// It accepts the bare codes as well as common textual aliases seen in
// uploaded ledgers ("Unsecured", "Crown", "Floating Charge"). The second
// return value is false when the input is unrecognized.
func ParseTier(raw string) (TierCode, bool) {
	t := strings.ToLower(strings.TrimSpace(raw))

	if code, ok := tierCodes[t]; ok {
		return code, true
	}

	switch {
	case strings.Contains(t, "unsecured") || strings.Contains(t, "ordinary"):
		return TierUnsecured, true
	case strings.Contains(t, "secondary") || strings.Contains(t, "crown"):
		return TierCrownPref, true
	case strings.Contains(t, "preferential"):
		return TierEmployeePref, true
	case strings.Contains(t, "secured") || strings.Contains(t, "fixed"):
		return TierFixedCharge, true
	case strings.Contains(t, "floating"):
		return TierFloatingCharge, true
	}

	return "", false
}
