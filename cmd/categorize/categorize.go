// Package categorize handles one-off transaction categorization
package categorize

import (
	"banktocfo/cfopack/cmd/root"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	description string
	amount      string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long:  `Classify one transaction description with the keyword rulebook, the same way statement conversion does.`,
	Run:   categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "0", "Transaction amount (negative for expenses)")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		root.Log.WithError(err).Warn("Failed to mark flag required")
	}
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q: %v", amount, err)
	}

	category := root.NewCategorizer().Classify(description, value)
	root.Log.Infof("Category: %s", category)
}
