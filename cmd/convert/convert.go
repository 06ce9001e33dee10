// Package convert handles statement conversion commands
package convert

import (
	"context"
	"os"
	"strings"

	"banktocfo/cfopack/cmd/root"
	"banktocfo/cfopack/internal/report"

	"github.com/spf13/cobra"
)

var ledgerFile string

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a bank statement into a CFO pack workbook",
	Long: `Parse a CSV or PDF bank statement, categorize every transaction and
write the resulting workbook. Use --ledger to also export the categorized
transactions as a flat CSV file.`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Also write the categorized transactions to this CSV file")
}

func convertFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	if input == "" {
		root.Log.Fatal("Input statement file is required (--input)")
	}
	if output == "" {
		output = strings.TrimSuffix(input, "."+extension(input)) + "_CFO_Pack.xlsx"
	}

	root.Log.Infof("Input statement file: %s", input)
	root.Log.Infof("Output workbook: %s", output)

	file, err := os.Open(input)
	if err != nil {
		root.Log.Fatalf("Error opening statement file: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close statement file")
		}
	}()

	transactions, err := root.NewRouter().Parse(context.Background(), input, file)
	if err != nil {
		root.Log.Fatalf("Error parsing statement: %v", err)
	}

	root.NewCategorizer().Apply(transactions)

	if err := report.NewWorkbookGenerator().Generate(transactions, output); err != nil {
		root.Log.Fatalf("Error generating workbook: %v", err)
	}

	if ledgerFile != "" {
		if err := report.WriteLedgerCSV(transactions, ledgerFile); err != nil {
			root.Log.Fatalf("Error writing ledger CSV: %v", err)
		}
		root.Log.Infof("Ledger CSV written: %s", ledgerFile)
	}

	root.Log.Infof("CFO pack written with %d transactions", len(transactions))
}

func extension(fileName string) string {
	if idx := strings.LastIndex(fileName, "."); idx != -1 {
		return fileName[idx+1:]
	}
	return ""
}
