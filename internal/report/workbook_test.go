package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"banktocfo/cfopack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		models.NewTransaction("2024-01-05", "client payment", decimal.RequireFromString("1500.00"), ""),
		models.NewTransaction("2024-01-10", "adobe subscription", decimal.RequireFromString("-52.99"), ""),
		models.NewTransaction("2024-02-02", "grocery store", decimal.RequireFromString("-120.45"), ""),
		models.NewTransaction("2024-02-15", "consulting invoice", decimal.RequireFromString("800.00"), ""),
	}
}

func categorized() []models.Transaction {
	txs := sampleTransactions()
	txs[0].Category = "Revenue"
	txs[1].Category = "Software"
	txs[2].Category = "Groceries"
	txs[3].Category = "Revenue"
	return txs
}

func TestGenerateWorkbook(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "cfo_pack.xlsx")

	err := NewWorkbookGenerator().Generate(categorized(), outputPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	assert.Equal(t, []string{
		"Dashboard",
		"All Transactions",
		"Monthly Analysis",
		"Category Analysis",
		"How to Use",
	}, f.GetSheetList())

	// Dashboard metrics.
	title, err := f.GetCellValue("Dashboard", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Financial Dashboard", title)

	income, err := f.GetCellValue("Dashboard", "B3")
	require.NoError(t, err)
	assert.Equal(t, "$2300.00", income)

	expenses, err := f.GetCellValue("Dashboard", "B4")
	require.NoError(t, err)
	assert.Equal(t, "$173.44", expenses)

	net, err := f.GetCellValue("Dashboard", "B5")
	require.NoError(t, err)
	assert.Equal(t, "$2126.56", net)

	months, err := f.GetCellValue("Dashboard", "B7")
	require.NoError(t, err)
	assert.Equal(t, "2", months)

	// Transactions sheet is sorted most recent first.
	firstDate, err := f.GetCellValue("All Transactions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-15", firstDate)

	lastDate, err := f.GetCellValue("All Transactions", "A5")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", lastDate)

	// Monthly analysis is in ascending month order.
	firstMonth, err := f.GetCellValue("Monthly Analysis", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", firstMonth)

	// Category analysis is sorted by magnitude, Revenue dominates.
	topCategory, err := f.GetCellValue("Category Analysis", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Revenue", topCategory)
}

func TestGenerateRejectsEmptyInput(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "cfo_pack.xlsx")

	err := NewWorkbookGenerator().Generate(nil, outputPath)
	require.Error(t, err)
}

func TestGenerateIncomeOnlySkipsCategoryChart(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "cfo_pack.xlsx")

	txs := []models.Transaction{
		models.NewTransaction("2024-03-01", "client payment", decimal.RequireFromString("100.00"), ""),
	}
	txs[0].Category = "Revenue"

	err := NewWorkbookGenerator().Generate(txs, outputPath)
	require.NoError(t, err)
}

func TestWriteLedgerCSV(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "out", "ledger.csv")

	err := WriteLedgerCSV(categorized(), csvFile)
	require.NoError(t, err)

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "date,description,category,amount,type", strings.ToLower(lines[0]))
	assert.Contains(t, lines[1], "client payment")
	assert.Contains(t, lines[1], "1500.00")
	assert.Contains(t, lines[2], "-52.99")
}

func TestWriteLedgerCSVNilRejected(t *testing.T) {
	err := WriteLedgerCSV(nil, filepath.Join(t.TempDir(), "ledger.csv"))
	require.Error(t, err)
}

func TestMarshalLedgerFixedDecimals(t *testing.T) {
	txs := []models.Transaction{
		models.NewTransaction("2024-04-01", "round amount", decimal.RequireFromString("-4.5"), ""),
	}

	var buf bytes.Buffer
	require.NoError(t, MarshalLedger(txs, &buf))
	assert.Contains(t, buf.String(), "-4.50")
}
