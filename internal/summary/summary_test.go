package summary

import (
	"testing"

	"banktocfo/cfopack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date, category, amount string) models.Transaction {
	return models.Transaction{
		Date:     date,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestCategoryTotals(t *testing.T) {
	transactions := []models.Transaction{
		tx("2024-01-02", "Revenue", "1500.00"),
		tx("2024-01-10", "Software", "-50.00"),
		tx("2024-01-12", "Software", "-25.50"),
		tx("2024-02-01", "Fast Food", "-5.50"),
	}

	totals := CategoryTotals(transactions)

	require.Len(t, totals, 3)
	assert.True(t, totals["Revenue"].Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, totals["Software"].Equal(decimal.RequireFromString("-75.50")))
	assert.True(t, totals["Fast Food"].Equal(decimal.RequireFromString("-5.50")))

	// No zero-filling of absent categories.
	_, ok := totals["Shopping"]
	assert.False(t, ok)
}

func TestCategoryTotalsEmpty(t *testing.T) {
	assert.Empty(t, CategoryTotals(nil))
}

func TestMonthlyCashflow(t *testing.T) {
	transactions := []models.Transaction{
		tx("2024-01-02", "Revenue", "1500.00"),
		tx("2024-01-10", "Software", "-50.00"),
		tx("2024-01-15", "Fast Food", "-5.50"),
	}

	monthly := MonthlyCashflow(transactions)

	require.Len(t, monthly, 1)
	flow := monthly["2024-01"]
	assert.True(t, flow.Revenue.Equal(decimal.RequireFromString("1500.00")), "revenue = %s", flow.Revenue)
	assert.True(t, flow.Expenses.Equal(decimal.RequireFromString("55.50")), "expenses = %s", flow.Expenses)
	assert.True(t, flow.NetIncome.Equal(decimal.RequireFromString("1444.50")), "net income = %s", flow.NetIncome)
}

func TestMonthlyCashflowMultipleMonths(t *testing.T) {
	transactions := []models.Transaction{
		tx("2024-01-02", "Revenue", "1000.00"),
		tx("2024-02-01", "Rent", "-800.00"),
		tx("2024-02-20", "Revenue", "1200.00"),
	}

	monthly := MonthlyCashflow(transactions)

	require.Len(t, monthly, 2)
	assert.True(t, monthly["2024-01"].NetIncome.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, monthly["2024-02"].NetIncome.Equal(decimal.RequireFromString("400.00")))
	assert.Equal(t, []string{"2024-01", "2024-02"}, monthly.SortedMonths())
}

func TestSortedByMagnitude(t *testing.T) {
	totals := CategorySummary{
		"Rent":      decimal.RequireFromString("-800.00"),
		"Revenue":   decimal.RequireFromString("1500.00"),
		"Fast Food": decimal.RequireFromString("-5.50"),
	}

	assert.Equal(t, []string{"Revenue", "Rent", "Fast Food"}, totals.SortedByMagnitude())
}
