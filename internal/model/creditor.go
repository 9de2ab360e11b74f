package model

import "github.com/shopspring/decimal"

// CreditorRecord is a single row from an uploaded creditor ledger after
// column mapping. RowNumber is the 1-based position in the source upload
// and is the stable identity carried through every warning.
type CreditorRecord struct {
	Name        string          `json:"name"`
	CurrentTier string          `json:"current_tier"`
	Amount      decimal.Decimal `json:"amount"`
	RowNumber   int             `json:"row_number"`
}

// Tier returns the normalized statutory tier for this record, if the
// practitioner-entered value is recognizable.
func (c CreditorRecord) Tier() (TierCode, bool) {
	return ParseTier(c.CurrentTier)
}

// Ledger is an ordered sequence of creditor records from one upload.
type Ledger []CreditorRecord
