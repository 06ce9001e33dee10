package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTransaction(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		txType       string
		expectedType string
	}{
		{
			name:         "debit derived from negative amount",
			amount:       "-45.67",
			txType:       "",
			expectedType: TypeDebit,
		},
		{
			name:         "credit derived from positive amount",
			amount:       "2500.00",
			txType:       "",
			expectedType: TypeCredit,
		},
		{
			name:         "zero amount defaults to credit",
			amount:       "0",
			txType:       "",
			expectedType: TypeCredit,
		},
		{
			name:         "source type label wins when present",
			amount:       "-12.00",
			txType:       "ACH_DEBIT",
			expectedType: "ACH_DEBIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			tx := NewTransaction("2024-01-15", "  Coffee Shop  ", amount, tt.txType)

			assert.Equal(t, tt.expectedType, tx.Type)
			assert.Equal(t, "Coffee Shop", tx.Description, "description should be trimmed")
			assert.Equal(t, "2024-01-15", tx.Date)
		})
	}
}

func TestMonthKey(t *testing.T) {
	tx := Transaction{Date: "2024-03-09"}
	assert.Equal(t, "2024-03", tx.MonthKey())

	short := Transaction{Date: "2024"}
	assert.Equal(t, "2024", short.MonthKey())
}

func TestDedupKey(t *testing.T) {
	a := Transaction{Date: "2024-01-15", Description: "Amazon.com", Amount: decimal.RequireFromString("-45.67")}
	b := Transaction{Date: "2024-01-15", Description: "Amazon.com", Amount: decimal.RequireFromString("-45.67"), Type: TypeDebit}
	c := Transaction{Date: "2024-01-15", Description: "Amazon.com", Amount: decimal.RequireFromString("-45.68")}

	// Type is advisory and must not affect identity.
	assert.Equal(t, a.DedupKey(), b.DedupKey())
	assert.NotEqual(t, a.DedupKey(), c.DedupKey())
}
