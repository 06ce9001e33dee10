package categorizer

import (
	"testing"

	"banktocfo/cfopack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassifyKeywordMatch(t *testing.T) {
	c := New()

	tests := []struct {
		name        string
		description string
		amount      string
		expected    string
	}{
		{
			name:        "fast food chain",
			description: "DEBIT CARD PURCHASE 121424 5811121424 CHIPOTLE",
			amount:      "-12.50",
			expected:    "Fast Food",
		},
		{
			name:        "shopping",
			description: "POS DEBIT 122024 5411122024 TARGET",
			amount:      "-54.12",
			expected:    "Shopping",
		},
		{
			name:        "streaming subscription",
			description: "Recurring Deb Card Purch NETFLIX.COM",
			amount:      "-15.49",
			expected:    "Subscriptions",
		},
		{
			name:        "payroll credit",
			description: "DIRECT DEPOSIT ACME LLC PAYROLL",
			amount:      "3200.00",
			expected:    "Revenue",
		},
		{
			name:        "match against raw description when codes absent",
			description: "Starbucks Store #4821",
			amount:      "-6.45",
			expected:    "Fast Food",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.description, amt(tt.amount)))
		})
	}
}

func TestClassifyPriorityOrdering(t *testing.T) {
	c := New()

	// "Amazon Web Services" matches Software's keywords and Shopping's
	// "amazon"; Software is declared earlier and must win.
	assert.Equal(t, "Software", c.Classify("Amazon Web Services invoice", amt("-120.00")))

	// A plain Amazon purchase still lands in Shopping.
	assert.Equal(t, "Shopping", c.Classify("AMAZON.COM ORDER 112-55", amt("-34.99")))
}

func TestClassifyFallbackBoundaries(t *testing.T) {
	c := New()

	tests := []struct {
		amount   string
		expected string
	}{
		{"-4.99", models.CategorySmallExpense},
		{"4.99", models.CategoryIncome}, // positive wins before the small-expense check
		{"-5.00", models.CategoryOtherExpense},
		{"100.00", models.CategoryIncome},
		{"0", models.CategorySmallExpense},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify("zzqx unmatched merchant", amt(tt.amount)))
		})
	}
}

func TestClassifyTotality(t *testing.T) {
	c := New()

	descriptions := []string{"", "   ", "***", "completely unknown 999", "CHIPOTLE"}
	amounts := []string{"-1000", "-5", "-0.01", "0", "0.01", "5", "1000"}

	for _, desc := range descriptions {
		for _, a := range amounts {
			category := c.Classify(desc, amt(a))
			assert.NotEmpty(t, category, "Classify(%q, %s) returned empty category", desc, a)
		}
	}
}

func TestNewWithRules(t *testing.T) {
	custom := []models.CategoryRule{
		{Name: "Coffee", Keywords: []string{"espresso"}},
	}
	c := NewWithRules(custom)

	assert.Equal(t, "Coffee", c.Classify("Espresso Lab downtown", amt("-4.00")))
	// Built-in taxonomy is replaced wholesale by the override.
	assert.Equal(t, models.CategoryOtherExpense, c.Classify("CHIPOTLE", amt("-12.00")))

	// Empty override keeps the built-in rulebook.
	assert.Equal(t, "Fast Food", NewWithRules(nil).Classify("CHIPOTLE", amt("-12.00")))
}

func TestApply(t *testing.T) {
	c := New()
	transactions := []models.Transaction{
		{Date: "2024-01-05", Description: "CHIPOTLE 1234", Amount: amt("-12.50")},
		{Date: "2024-01-06", Description: "mystery merchant", Amount: amt("250.00")},
	}

	result := c.Apply(transactions)

	assert.Equal(t, "Fast Food", result[0].Category)
	assert.Equal(t, models.CategoryIncome, result[1].Category)
	// Apply mutates in place.
	assert.Equal(t, "Fast Food", transactions[0].Category)
}
