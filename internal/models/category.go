package models

// CategoryRule pairs a category name with the keywords that map a
// transaction into it. Rules live in an ordered list: declaration order is
// the tie-break when a description matches keywords from several categories.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoryRulebook is the top-level YAML structure of a category rules file.
type CategoryRulebook struct {
	Categories []CategoryRule `yaml:"categories"`
}

// Fallback categories assigned when no keyword rule matches. Every
// transaction ends up with exactly one category because of these.
const (
	CategoryIncome       = "Income"
	CategorySmallExpense = "Small Expense"
	CategoryOtherExpense = "Other Expense"
)
