package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/formalbridge/waterfall/internal/model"
)

// DuplicateType describes what two or more ledger entries share.
type DuplicateType string

// Duplicate group types.
const (
	DuplicateNameAndAmount DuplicateType = "name_and_amount"
	DuplicateNameOnly      DuplicateType = "name_only"
)

// DuplicateGroup collects ledger entries that appear to describe the same
// creditor claim.
type DuplicateGroup struct {
	Type      DuplicateType          `json:"type"`
	Message   string                 `json:"message"`
	Creditors []model.CreditorRecord `json:"creditors"`
}

// Warning converts a duplicate group into an advisory warning anchored on
// the group's first row. Duplicates never block on their own; the
// practitioner decides whether the entries are genuinely distinct claims.
func (g DuplicateGroup) Warning() model.Warning {
	return model.Warning{
		Code:       model.CodeDuplicateEntry,
		Severity:   model.SeverityAdvisory,
		Message:    g.Message,
		Suggestion: "confirm these rows are separate claims or merge them",
		RowNumber:  g.Creditors[0].RowNumber,
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

func normalizeName(name string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "")
}

// DetectDuplicates groups creditors whose names normalize to the same
// string. Groups whose amounts are also identical are the strongest
// duplicate signal; same name with differing amounts is only noted.
func DetectDuplicates(creditors model.Ledger) []DuplicateGroup {
	byName := make(map[string][]model.CreditorRecord)
	var order []string

	for _, c := range creditors {
		key := normalizeName(c.Name)
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], c)
	}

	var groups []DuplicateGroup
	for _, key := range order {
		group := byName[key]
		if len(group) < 2 {
			continue
		}

		sameAmount := true
		for _, c := range group[1:] {
			if !c.Amount.Equal(group[0].Amount) {
				sameAmount = false
				break
			}
		}

		if sameAmount {
			groups = append(groups, DuplicateGroup{
				Type:      DuplicateNameAndAmount,
				Creditors: group,
				Message: fmt.Sprintf("potential duplicate: %d entries for %q with identical amounts (£%s)",
					len(group), group[0].Name, formatAmount(group[0].Amount)),
			})
		} else {
			groups = append(groups, DuplicateGroup{
				Type:      DuplicateNameOnly,
				Creditors: group,
				Message:   fmt.Sprintf("multiple entries for %q with different amounts", group[0].Name),
			})
		}
	}

	return groups
}

func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	return strings.TrimSuffix(s, ".00")
}
