package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		raw  string
		want TierCode
		ok   bool
	}{
		{raw: "6", want: TierUnsecured, ok: true},
		{raw: " 3B ", want: TierCrownPref, ok: true},
		{raw: "3a", want: TierEmployeePref, ok: true},
		{raw: "Unsecured Creditors", want: TierUnsecured, ok: true},
		{raw: "Ordinary", want: TierUnsecured, ok: true},
		{raw: "Secondary Preferential (Crown)", want: TierCrownPref, ok: true},
		{raw: "Preferential", want: TierEmployeePref, ok: true},
		{raw: "Fixed Charge", want: TierFixedCharge, ok: true},
		{raw: "Floating Charge", want: TierFloatingCharge, ok: true},
		{raw: "??", ok: false},
		{raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseTier(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWarningIsBlocking(t *testing.T) {
	assert.True(t, Warning{Severity: SeverityBlocking}.IsBlocking())
	assert.False(t, Warning{Severity: SeverityAdvisory}.IsBlocking())
}
