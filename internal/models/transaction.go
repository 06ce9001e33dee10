// Package models defines the canonical transaction record that every
// statement parser converges on, along with small helpers shared by the
// categorization and reporting layers.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction type labels. The label is informational only; the sign of
// Amount is the single source of truth for transaction direction.
const (
	TypeDebit  = "Debit"
	TypeCredit = "Credit"
)

// ISODateLayout is the serialized form of every transaction date.
const ISODateLayout = "2006-01-02"

// Transaction is the canonical record produced by the CSV and PDF parsers.
// Description keeps whatever noise the bank exported; cleaning happens at
// categorization time, not here.
type Transaction struct {
	Date        string          `csv:"Date" json:"date"`
	Description string          `csv:"Description" json:"description"`
	Category    string          `csv:"Category" json:"category"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`
	Type        string          `csv:"Type" json:"type"`
}

// NewTransaction builds a record from already-normalized parts. The type
// label is derived from the amount sign when the source did not provide one.
func NewTransaction(date, description string, amount decimal.Decimal, txType string) Transaction {
	if txType == "" {
		txType = TypeFromAmount(amount)
	}
	return Transaction{
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        txType,
	}
}

// TypeFromAmount derives the advisory type label from the amount sign.
func TypeFromAmount(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return TypeDebit
	}
	return TypeCredit
}

// MonthKey returns the YYYY-MM prefix of the transaction date.
func (t Transaction) MonthKey() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// DedupKey identifies a transaction for cross-page deduplication. Two
// records extracted from overlapping page renders collide on this key.
func (t Transaction) DedupKey() string {
	return t.Date + "|" + t.Description + "|" + t.Amount.String()
}
