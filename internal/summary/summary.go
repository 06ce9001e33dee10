// Package summary computes the deterministic aggregates consumed by the
// workbook renderer: per-category totals and per-month cashflow.
package summary

import (
	"sort"

	"banktocfo/cfopack/internal/models"

	"github.com/shopspring/decimal"
)

// CategorySummary maps a category name to the signed total of all its
// transaction amounts.
type CategorySummary map[string]decimal.Decimal

// MonthlyFlow is one month's cashflow triple. Revenue and Expenses are both
// non-negative; NetIncome is Revenue minus Expenses.
type MonthlyFlow struct {
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	NetIncome decimal.Decimal
}

// MonthlySummary maps a YYYY-MM month key to that month's cashflow.
type MonthlySummary map[string]MonthlyFlow

// CategoryTotals accumulates the signed amount per category in one linear
// pass. Categories absent from the input never appear in the result.
func CategoryTotals(transactions []models.Transaction) CategorySummary {
	totals := make(CategorySummary)
	for _, tx := range transactions {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// MonthlyCashflow accumulates revenue and expenses per month, then computes
// net income in a second pass over the accumulated map. Expenses are stored
// as absolute values.
func MonthlyCashflow(transactions []models.Transaction) MonthlySummary {
	monthly := make(MonthlySummary)

	for _, tx := range transactions {
		month := tx.MonthKey()
		flow := monthly[month]
		if tx.Amount.IsPositive() {
			flow.Revenue = flow.Revenue.Add(tx.Amount)
		} else {
			flow.Expenses = flow.Expenses.Add(tx.Amount.Abs())
		}
		monthly[month] = flow
	}

	for month, flow := range monthly {
		flow.NetIncome = flow.Revenue.Sub(flow.Expenses)
		monthly[month] = flow
	}

	return monthly
}

// SortedMonths returns the month keys in ascending order.
func (m MonthlySummary) SortedMonths() []string {
	months := make([]string, 0, len(m))
	for month := range m {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

// SortedByMagnitude returns the category names ordered by the absolute value
// of their totals, largest first. Ties break alphabetically so the order is
// stable across runs.
func (s CategorySummary) SortedByMagnitude() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s[names[i]].Abs(), s[names[j]].Abs()
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})
	return names
}
