package csvparser

import (
	"fmt"
	"strings"

	"banktocfo/cfopack/internal/dateutils"
	"banktocfo/cfopack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// rowView gives converters access to a record's cells by lowercased column
// name, tolerating short rows.
type rowView struct {
	index  map[string]int
	record []string
}

func newRowIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func (v rowView) field(name string) (string, bool) {
	i, ok := v.index[name]
	if !ok || i >= len(v.record) {
		return "", false
	}
	return strings.TrimSpace(v.record[i]), true
}

// convertRows maps raw records into canonical transactions using the
// converter for the detected schema. A row that fails conversion is logged
// and dropped; the rest of the file is unaffected.
func convertRows(schema Schema, headers []string, records [][]string) []models.Transaction {
	index := newRowIndex(headers)

	convert := convertGenericRow
	switch schema {
	case SchemaChase:
		convert = convertChaseRow
	case SchemaBofA:
		convert = convertBofARow
	case SchemaWellsFargo:
		convert = convertWellsFargoRow
	}

	transactions := make([]models.Transaction, 0, len(records))
	skipped := 0
	for i, record := range records {
		tx, err := convert(rowView{index: index, record: record})
		if err != nil {
			skipped++
			log.WithFields(logrus.Fields{
				"schema": schema,
				"row":    i + 2, // 1-based, after the header row
				"reason": err.Error(),
			}).Debug("Skipping malformed CSV row")
			continue
		}
		transactions = append(transactions, tx)
	}

	if skipped > 0 {
		log.WithFields(logrus.Fields{
			"schema":  schema,
			"skipped": skipped,
		}).Warn("Skipped malformed CSV rows")
	}

	return transactions
}

// convertChaseRow maps a Posting Date/Description/Amount/Type/Balance row.
// The Type column is advisory; the amount sign is taken as-is and never
// overridden by it.
func convertChaseRow(row rowView) (models.Transaction, error) {
	date, err := isoDateField(row, "posting date")
	if err != nil {
		return models.Transaction{}, err
	}

	description, ok := row.field("description")
	if !ok || description == "" {
		return models.Transaction{}, fmt.Errorf("missing description")
	}

	amount, err := amountField(row)
	if err != nil {
		return models.Transaction{}, err
	}

	txType, _ := row.field("type")
	return models.NewTransaction(date, description, amount, txType), nil
}

// convertBofARow maps a Posted Date/Payee/Address/Amount row.
func convertBofARow(row rowView) (models.Transaction, error) {
	date, err := isoDateField(row, "posted date")
	if err != nil {
		return models.Transaction{}, err
	}

	payee, ok := row.field("payee")
	if !ok || payee == "" {
		return models.Transaction{}, fmt.Errorf("missing payee")
	}

	amount, err := amountField(row)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.NewTransaction(date, payee, amount, ""), nil
}

// convertWellsFargoRow maps a Date/Amount row, reading the description from
// a Description or Memo column when present and defaulting to empty.
func convertWellsFargoRow(row rowView) (models.Transaction, error) {
	date, err := isoDateField(row, "date")
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := amountField(row)
	if err != nil {
		return models.Transaction{}, err
	}

	description, ok := row.field("description")
	if !ok || description == "" {
		description, _ = row.field("memo")
	}

	return models.NewTransaction(date, description, amount, ""), nil
}

// convertGenericRow maps a Date/Description/Amount row.
func convertGenericRow(row rowView) (models.Transaction, error) {
	date, err := isoDateField(row, "date")
	if err != nil {
		return models.Transaction{}, err
	}

	description, ok := row.field("description")
	if !ok || description == "" {
		return models.Transaction{}, fmt.Errorf("missing description")
	}

	amount, err := amountField(row)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.NewTransaction(date, description, amount, ""), nil
}

func isoDateField(row rowView, column string) (string, error) {
	raw, ok := row.field(column)
	if !ok || raw == "" {
		return "", fmt.Errorf("missing %s", column)
	}
	date, err := dateutils.ToISO(raw)
	if err != nil {
		return "", fmt.Errorf("bad %s %q: %w", column, raw, err)
	}
	return date, nil
}

func amountField(row rowView) (decimal.Decimal, error) {
	raw, ok := row.field("amount")
	if !ok || raw == "" {
		return decimal.Decimal{}, fmt.Errorf("missing amount")
	}

	cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad amount %q: %w", raw, err)
	}
	return amount, nil
}
