// Package classify detects statutory misclassifications in a creditor
// ledger. Detection is heuristic text matching against a declarative rule
// table; the classifier only recommends a tier, it never rewrites one.
package classify

import (
	"regexp"

	"github.com/formalbridge/waterfall/internal/model"
)

// Rule maps a whole-phrase name pattern to the statutory tier it implies.
// Patterns are anchored on word boundaries tied to the statutory phrase
// ("holiday pay", never bare "holiday") so unrelated proper names do not
// trigger a match.
type Rule struct {
	Name     string
	Statute  string
	Breach   string
	Suggests model.TierCode
	pattern  *regexp.Regexp
}

// Matches reports whether the creditor name triggers this rule. Names that
// look like trading companies are excluded wholesale: "Holiday Inn
// Conference" is a hotel invoice, not accrued holiday pay.
func (r Rule) Matches(name string) bool {
	if isLikelyCompanyName(name) {
		return false
	}
	return r.pattern.MatchString(name)
}

// Crown Preference rules (Finance Act 2020): tax-authority claims rank as
// secondary preferential, tier 3b. Ordered most-specific first so the rule
// name reported for e.g. "HMRC VAT" is the VAT rule.
var crownRules = []Rule{
	{
		Name:     "VAT",
		Statute:  "FA2020 s.98",
		Breach:   "Crown Preference Breach",
		Suggests: model.TierCrownPref,
		pattern:  regexp.MustCompile(`(?i)\b(vat|value\s*added\s*tax)\b`),
	},
	{
		Name:     "PAYE",
		Statute:  "FA2020 s.98",
		Breach:   "Crown Preference Breach",
		Suggests: model.TierCrownPref,
		pattern:  regexp.MustCompile(`(?i)\b(paye|pay\s*as\s*you\s*earn)\b`),
	},
	{
		Name:     "CIS",
		Statute:  "FA2020 s.98",
		Breach:   "Crown Preference Breach",
		Suggests: model.TierCrownPref,
		pattern:  regexp.MustCompile(`(?i)\b(cis|construction\s*industry\s*scheme)\b`),
	},
	{
		Name:     "National Insurance",
		Statute:  "FA2020 s.98",
		Breach:   "Crown Preference Breach",
		Suggests: model.TierCrownPref,
		pattern:  regexp.MustCompile(`(?i)\b(nic|national\s*insurance|ni\s*contributions?)\b`),
	},
	{
		Name:     "Corporation Tax",
		Statute:  "FA2020 s.98",
		Breach:   "Crown Preference Breach",
		Suggests: model.TierCrownPref,
		pattern:  regexp.MustCompile(`(?i)\bcorporation\s*tax\b`),
	},
	{
		Name:     "HMRC",
		Statute:  "FA2020 s.98",
		Breach:   "Crown Preference Breach",
		Suggests: model.TierCrownPref,
		pattern:  regexp.MustCompile(`(?i)\b(hmrc|hm\s*revenue|inland\s*revenue)\b`),
	},
}

// Employee preferential rules (Insolvency Act 1986 Schedule 6): tier 3a.
var preferentialRules = []Rule{
	{
		Name:     "Wages",
		Statute:  "IA1986 Sch.6",
		Breach:   "Preferential Creditor Breach",
		Suggests: model.TierEmployeePref,
		pattern:  regexp.MustCompile(`(?i)\b(wages?|salary|salaries|arrears\s*of\s*pay|employee\s*wages?)\b`),
	},
	{
		Name:     "Holiday Pay",
		Statute:  "IA1986 Sch.6",
		Breach:   "Preferential Creditor Breach",
		Suggests: model.TierEmployeePref,
		pattern:  regexp.MustCompile(`(?i)\b(holiday\s*pay|annual\s*leave|accrued\s*leave)\b`),
	},
	{
		Name:     "Redundancy",
		Statute:  "IA1986 Sch.6",
		Breach:   "Preferential Creditor Breach",
		Suggests: model.TierEmployeePref,
		pattern:  regexp.MustCompile(`(?i)\b(redundancy|notice\s*pay|lieu\s*of\s*notice)\b`),
	},
	{
		Name:     "Pension",
		Statute:  "IA1986 Sch.6",
		Breach:   "Preferential Creditor Breach",
		Suggests: model.TierEmployeePref,
		pattern:  regexp.MustCompile(`(?i)\b(pension\s*contributions?|occupational\s*pension|auto-?enrolment)\b`),
	},
}

// wagesPattern gates the Schedule 6 Para 9(c) threshold check: only claims
// described as wages are subject to the per-employee preferential cap.
var wagesPattern = regexp.MustCompile(`(?i)\b(wages?|salary|salaries|arrears\s*of\s*pay|employee\s*wages?)\b`)

// Company-name indicators. A name carrying one of these is treated as a
// trading counterparty, not a statutory claim description.
var companyNameIndicators = regexp.MustCompile(
	`(?i)\b(ltd|limited|plc|inc|incorporated|llp|services|solutions|consulting|consultants|group|holdings|agency|associates|partners)\b`)

// Known false positives that slip past the whole-phrase patterns.
var falsePositives = []*regexp.Regexp{
	regexp.MustCompile(`(?i)holiday\s*inn`),
	regexp.MustCompile(`(?i)wageworks`),
}

func isLikelyCompanyName(name string) bool {
	if companyNameIndicators.MatchString(name) {
		return true
	}
	for _, re := range falsePositives {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// AllRules returns the full rule table, Crown rules first.
func AllRules() []Rule {
	rules := make([]Rule, 0, len(crownRules)+len(preferentialRules))
	rules = append(rules, crownRules...)
	rules = append(rules, preferentialRules...)
	return rules
}
