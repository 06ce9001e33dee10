// Package report renders categorized transactions into the deliverable
// outputs: a multi-sheet Excel workbook and a flat CSV ledger.
package report

import (
	"fmt"
	"sort"
	"time"

	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/models"
	"banktocfo/cfopack/internal/summary"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var log = config.Logger

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	sheetDashboard    = "Dashboard"
	sheetTransactions = "All Transactions"
	sheetMonthly      = "Monthly Analysis"
	sheetCategory     = "Category Analysis"
	sheetInstructions = "How to Use"

	brandColor    = "168C54"
	positiveColor = "28A745"
	negativeColor = "DC3545"

	currencyFormat = "$#,##0.00"
	percentFormat  = `0.0"%"`
)

// topExpenseCategories caps the dashboard category chart so long tails of
// small categories don't squash the bars.
const topExpenseCategories = 10

// WorkbookGenerator renders the Excel deliverable.
type WorkbookGenerator struct{}

// NewWorkbookGenerator creates a workbook generator.
func NewWorkbookGenerator() *WorkbookGenerator {
	return &WorkbookGenerator{}
}

// styleSet holds the style IDs registered once per workbook.
type styleSet struct {
	title    int
	header   int
	bold     int
	currency int
	gain     int
	loss     int
	percent  int
	section  int
	wrapped  int
}

// Generate writes the full workbook for the given categorized transactions
// to outputPath. Transactions must be non-empty; metrics and sheet contents
// are derived here so callers only hand over the ledger.
func (g *WorkbookGenerator) Generate(transactions []models.Transaction, outputPath string) error {
	if len(transactions) == 0 {
		return fmt.Errorf("cannot generate workbook from zero transactions")
	}

	log.WithFields(logrus.Fields{
		"file":  outputPath,
		"count": len(transactions),
	}).Info("Generating workbook")

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	styles, err := registerStyles(f)
	if err != nil {
		return fmt.Errorf("error registering workbook styles: %w", err)
	}

	monthly := summary.MonthlyCashflow(transactions)
	categories := summary.CategoryTotals(transactions)
	metrics := computeMetrics(transactions, monthly)

	if err := f.SetSheetName("Sheet1", sheetDashboard); err != nil {
		return fmt.Errorf("error naming dashboard sheet: %w", err)
	}
	if err := writeDashboard(f, styles, metrics, monthly, categories); err != nil {
		return fmt.Errorf("error writing dashboard: %w", err)
	}
	if err := writeTransactions(f, styles, transactions); err != nil {
		return fmt.Errorf("error writing transactions sheet: %w", err)
	}
	if err := writeMonthly(f, styles, monthly); err != nil {
		return fmt.Errorf("error writing monthly sheet: %w", err)
	}
	if err := writeCategories(f, styles, categories, metrics.TotalExpenses); err != nil {
		return fmt.Errorf("error writing category sheet: %w", err)
	}
	if err := writeInstructions(f, styles); err != nil {
		return fmt.Errorf("error writing instructions sheet: %w", err)
	}

	index, err := f.GetSheetIndex(sheetDashboard)
	if err != nil {
		return fmt.Errorf("error locating dashboard sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	log.WithField("file", outputPath).Info("Workbook written")
	return nil
}

// packMetrics are the headline numbers shown on the dashboard.
type packMetrics struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
	StartDate     string
	EndDate       string
	MonthsCount   int
	Transactions  int
}

func computeMetrics(transactions []models.Transaction, monthly summary.MonthlySummary) packMetrics {
	m := packMetrics{Transactions: len(transactions)}

	minDate, maxDate := transactions[0].Date, transactions[0].Date
	for _, tx := range transactions {
		if tx.Amount.IsPositive() {
			m.TotalIncome = m.TotalIncome.Add(tx.Amount)
		} else {
			m.TotalExpenses = m.TotalExpenses.Add(tx.Amount.Abs())
		}
		if tx.Date < minDate {
			minDate = tx.Date
		}
		if tx.Date > maxDate {
			maxDate = tx.Date
		}
	}
	m.NetIncome = m.TotalIncome.Sub(m.TotalExpenses)
	m.StartDate = formatPeriodDate(minDate)
	m.EndDate = formatPeriodDate(maxDate)
	m.MonthsCount = len(monthly)
	return m
}

// formatPeriodDate renders an ISO date as "Jan 02, 2006" for the dashboard,
// falling back to the raw value when it does not parse.
func formatPeriodDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("Jan 02, 2006")
}

func registerStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	currency := currencyFormat
	percent := percentFormat

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 20, Bold: true, Color: brandColor},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{brandColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.bold, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	}); err != nil {
		return s, err
	}
	if s.currency, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &currency,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.gain, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Color: positiveColor},
		CustomNumFmt: &currency,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.loss, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Color: negativeColor},
		CustomNumFmt: &currency,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.percent, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &percent,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Bold: true, Color: brandColor},
	}); err != nil {
		return s, err
	}
	if s.wrapped, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	}); err != nil {
		return s, err
	}
	return s, nil
}

func writeDashboard(f *excelize.File, styles styleSet, metrics packMetrics, monthly summary.MonthlySummary, categories summary.CategorySummary) error {
	sheet := sheetDashboard

	if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "C", 20); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", "Financial Dashboard"); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", styles.title); err != nil {
		return err
	}

	if err := setRow(f, sheet, 2, "Metric", "Value"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", "B2", styles.header); err != nil {
		return err
	}

	rows := [][2]string{
		{"Total Income", "$" + metrics.TotalIncome.StringFixed(2)},
		{"Total Expenses", "$" + metrics.TotalExpenses.StringFixed(2)},
		{"Net Income", "$" + metrics.NetIncome.StringFixed(2)},
		{"Statement Period", metrics.StartDate + " - " + metrics.EndDate},
		{"Months Analyzed", fmt.Sprint(metrics.MonthsCount)},
		{"Total Transactions", fmt.Sprint(metrics.Transactions)},
	}
	for i, r := range rows {
		rowNum := 3 + i
		if err := setRow(f, sheet, rowNum, r[0], r[1]); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetCellStyle(sheet, cell, cell, styles.bold); err != nil {
			return err
		}
	}

	// Net income value gets green or red depending on sign.
	netStyle := styles.gain
	if metrics.NetIncome.IsNegative() {
		netStyle = styles.loss
	}
	if err := f.SetCellStyle(sheet, "B5", "B5", netStyle); err != nil {
		return err
	}

	if err := addMonthlyChart(f, sheet, styles, monthly, 11); err != nil {
		return err
	}
	return addCategoryChart(f, sheet, styles, categories, 28)
}

// addMonthlyChart writes the income-vs-expenses data block and attaches a
// column chart reading from it.
func addMonthlyChart(f *excelize.File, sheet string, styles styleSet, monthly summary.MonthlySummary, startRow int) error {
	titleCell, _ := excelize.CoordinatesToCellName(1, startRow)
	if err := f.SetCellValue(sheet, titleCell, "Monthly Cashflow"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, titleCell, titleCell, styles.section); err != nil {
		return err
	}

	headerRow := startRow + 2
	if err := setRow(f, sheet, headerRow, "Month", "Income", "Expenses"); err != nil {
		return err
	}
	hStart, _ := excelize.CoordinatesToCellName(1, headerRow)
	hEnd, _ := excelize.CoordinatesToCellName(3, headerRow)
	if err := f.SetCellStyle(sheet, hStart, hEnd, styles.header); err != nil {
		return err
	}

	row := headerRow + 1
	for _, month := range monthly.SortedMonths() {
		flow := monthly[month]
		if err := setRow(f, sheet, row, month, flow.Revenue.InexactFloat64(), flow.Expenses.InexactFloat64()); err != nil {
			return err
		}
		cStart, _ := excelize.CoordinatesToCellName(2, row)
		cEnd, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(sheet, cStart, cEnd, styles.currency); err != nil {
			return err
		}
		row++
	}
	lastRow := row - 1

	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$%d", sheet, headerRow),
				Categories: fmt.Sprintf("%s!$A$%d:$A$%d", sheet, headerRow+1, lastRow),
				Values:     fmt.Sprintf("%s!$B$%d:$B$%d", sheet, headerRow+1, lastRow),
			},
			{
				Name:       fmt.Sprintf("%s!$C$%d", sheet, headerRow),
				Categories: fmt.Sprintf("%s!$A$%d:$A$%d", sheet, headerRow+1, lastRow),
				Values:     fmt.Sprintf("%s!$C$%d:$C$%d", sheet, headerRow+1, lastRow),
			},
		},
		Title:     []excelize.RichTextRun{{Text: "Monthly Income vs Expenses"}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 320},
	}
	anchor, _ := excelize.CoordinatesToCellName(5, headerRow)
	return f.AddChart(sheet, anchor, chart)
}

// addCategoryChart writes the top expense categories block and attaches a
// horizontal bar chart.
func addCategoryChart(f *excelize.File, sheet string, styles styleSet, categories summary.CategorySummary, startRow int) error {
	titleCell, _ := excelize.CoordinatesToCellName(1, startRow)
	if err := f.SetCellValue(sheet, titleCell, "Top Spending Categories"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, titleCell, titleCell, styles.section); err != nil {
		return err
	}

	headerRow := startRow + 2
	if err := setRow(f, sheet, headerRow, "Category", "Amount"); err != nil {
		return err
	}
	hStart, _ := excelize.CoordinatesToCellName(1, headerRow)
	hEnd, _ := excelize.CoordinatesToCellName(2, headerRow)
	if err := f.SetCellStyle(sheet, hStart, hEnd, styles.header); err != nil {
		return err
	}

	expenses := topExpenses(categories, topExpenseCategories)
	row := headerRow + 1
	for _, e := range expenses {
		if err := setRow(f, sheet, row, e.name, e.amount.InexactFloat64()); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellStyle(sheet, cell, cell, styles.currency); err != nil {
			return err
		}
		row++
	}
	lastRow := row - 1
	if lastRow < headerRow+1 {
		// No expense categories at all. Skip the chart, excelize rejects
		// empty series ranges.
		return nil
	}

	chart := &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$%d", sheet, headerRow),
				Categories: fmt.Sprintf("%s!$A$%d:$A$%d", sheet, headerRow+1, lastRow),
				Values:     fmt.Sprintf("%s!$B$%d:$B$%d", sheet, headerRow+1, lastRow),
			},
		},
		Title:     []excelize.RichTextRun{{Text: "Spending by Category"}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 380},
	}
	anchor, _ := excelize.CoordinatesToCellName(5, headerRow)
	return f.AddChart(sheet, anchor, chart)
}

type expenseEntry struct {
	name   string
	amount decimal.Decimal
}

// topExpenses returns the biggest expense categories as positive magnitudes,
// largest first, capped at limit.
func topExpenses(categories summary.CategorySummary, limit int) []expenseEntry {
	var entries []expenseEntry
	for name, total := range categories {
		if total.IsNegative() {
			entries = append(entries, expenseEntry{name: name, amount: total.Abs()})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].amount.Equal(entries[j].amount) {
			return entries[i].amount.GreaterThan(entries[j].amount)
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func writeTransactions(f *excelize.File, styles styleSet, transactions []models.Transaction) error {
	sheet := sheetTransactions
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 12}, {"B", 55}, {"C", 22}, {"D", 15}, {"E", 10},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.col, w.col, w.width); err != nil {
			return err
		}
	}

	if err := setRow(f, sheet, 1, "Date", "Description", "Category", "Amount", "Type"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", styles.header); err != nil {
		return err
	}

	// Most recent first.
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	for i, tx := range sorted {
		row := i + 2
		if err := setRow(f, sheet, row, tx.Date, tx.Description, tx.Category, tx.Amount.InexactFloat64(), tx.Type); err != nil {
			return err
		}
		amountCell, _ := excelize.CoordinatesToCellName(4, row)
		amountStyle := styles.gain
		if tx.Amount.IsNegative() {
			amountStyle = styles.loss
		}
		if err := f.SetCellStyle(sheet, amountCell, amountCell, amountStyle); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeMonthly(f *excelize.File, styles styleSet, monthly summary.MonthlySummary) error {
	sheet := sheetMonthly
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "D", 18); err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, "Month", "Revenue", "Expenses", "Net Income"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", styles.header); err != nil {
		return err
	}

	for i, month := range monthly.SortedMonths() {
		row := i + 2
		flow := monthly[month]
		if err := setRow(f, sheet, row,
			month,
			flow.Revenue.InexactFloat64(),
			flow.Expenses.InexactFloat64(),
			flow.NetIncome.InexactFloat64(),
		); err != nil {
			return err
		}
		cStart, _ := excelize.CoordinatesToCellName(2, row)
		cEnd, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(sheet, cStart, cEnd, styles.currency); err != nil {
			return err
		}
		netCell, _ := excelize.CoordinatesToCellName(4, row)
		netStyle := styles.gain
		if flow.NetIncome.IsNegative() {
			netStyle = styles.loss
		}
		if err := f.SetCellStyle(sheet, netCell, netCell, netStyle); err != nil {
			return err
		}
	}
	return nil
}

func writeCategories(f *excelize.File, styles styleSet, categories summary.CategorySummary, totalExpenses decimal.Decimal) error {
	sheet := sheetCategory
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 15); err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, "Category", "Amount", "Percentage"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", styles.header); err != nil {
		return err
	}

	hundred := decimal.NewFromInt(100)
	for i, name := range categories.SortedByMagnitude() {
		row := i + 2
		total := categories[name]

		// Percentage of total expenses, shown only for expense categories.
		percentage := decimal.Zero
		if total.IsNegative() && totalExpenses.IsPositive() {
			percentage = total.Abs().Div(totalExpenses).Mul(hundred)
		}

		if err := setRow(f, sheet, row, name, total.InexactFloat64(), percentage.InexactFloat64()); err != nil {
			return err
		}

		amountCell, _ := excelize.CoordinatesToCellName(2, row)
		amountStyle := styles.gain
		if total.IsNegative() {
			amountStyle = styles.loss
		}
		if err := f.SetCellStyle(sheet, amountCell, amountCell, amountStyle); err != nil {
			return err
		}
		pctCell, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(sheet, pctCell, pctCell, styles.percent); err != nil {
			return err
		}
	}
	return nil
}

func writeInstructions(f *excelize.File, styles styleSet) error {
	sheet := sheetInstructions
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 80); err != nil {
		return err
	}

	lines := [][2]string{
		{"How to Use Your CFO Pack", ""},
		{"", ""},
		{"What is this?", "Your bank statement has been converted into a financial report with automatic categorization."},
		{"", ""},
		{"Sheets Overview:", ""},
		{"1. Dashboard", "Quick overview of your finances with key metrics and charts"},
		{"2. All Transactions", "Complete list of all transactions, sorted by date with categories"},
		{"3. Monthly Analysis", "Month-by-month breakdown of income, expenses, and net income"},
		{"4. Category Analysis", "Spending breakdown by category with percentages"},
		{"5. How to Use", "This page"},
		{"", ""},
		{"Tips for Better Insights:", ""},
		{"1.", "Compare monthly spending to identify trends"},
		{"2.", "Look for unexpected high-spend categories"},
		{"3.", "Review the Other Expense category for miscategorized items"},
		{"4.", "Use this for tax preparation and expense tracking"},
		{"5.", "Upload multiple months to see spending patterns over time"},
		{"", ""},
		{"Note:", "Automatic categorization is not perfect. Review categories before filing taxes."},
	}

	for i, line := range lines {
		row := i + 1
		if err := setRow(f, sheet, row, line[0], line[1]); err != nil {
			return err
		}
		detailCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellStyle(sheet, detailCell, detailCell, styles.wrapped); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheet, "A1", "A1", styles.title); err != nil {
		return err
	}
	return f.MergeCell(sheet, "A1", "B1")
}

// setRow writes values into consecutive cells of one row starting at column A.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
