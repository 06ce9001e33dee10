// Package categorizer assigns a spending/income category to each transaction
// using ordered keyword rules over the normalized description.
package categorizer

import (
	"strings"

	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/models"
	"banktocfo/cfopack/internal/textutils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// smallExpenseLimit is the absolute amount below which an unmatched debit is
// filed as a small expense rather than a generic one.
var smallExpenseLimit = decimal.NewFromInt(5)

// Categorizer classifies transactions against an ordered rulebook.
// The zero value is not usable; construct with New or NewWithRules.
type Categorizer struct {
	rules []models.CategoryRule
}

// New returns a Categorizer backed by the built-in rulebook.
func New() *Categorizer {
	return &Categorizer{rules: DefaultRules()}
}

// NewWithRules returns a Categorizer using the given rulebook in its given
// order. An empty rulebook falls back to the built-in one.
func NewWithRules(rules []models.CategoryRule) *Categorizer {
	if len(rules) == 0 {
		return New()
	}
	return &Categorizer{rules: rules}
}

// Classify returns the category for one transaction. The first keyword hit
// wins, checked against both the normalized and the raw lowercased
// description so that rules can target either boilerplate codes or clean
// merchant names. When nothing matches, the amount decides: positive is
// Income, small debits are Small Expense, the rest Other Expense. Classify
// always returns a non-empty category.
func (c *Categorizer) Classify(description string, amount decimal.Decimal) string {
	cleaned := textutils.NormalizeDescription(description)
	rawLower := strings.ToLower(description)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(cleaned, keyword) || strings.Contains(rawLower, keyword) {
				return rule.Name
			}
		}
	}

	if amount.IsPositive() {
		return models.CategoryIncome
	}
	if amount.Abs().LessThan(smallExpenseLimit) {
		return models.CategorySmallExpense
	}
	return models.CategoryOtherExpense
}

// Apply attaches a category to every transaction in place and returns the
// same slice.
func (c *Categorizer) Apply(transactions []models.Transaction) []models.Transaction {
	for i := range transactions {
		transactions[i].Category = c.Classify(transactions[i].Description, transactions[i].Amount)
		log.WithFields(logrus.Fields{
			"description": transactions[i].Description,
			"category":    transactions[i].Category,
		}).Debug("Categorized transaction")
	}
	return transactions
}
