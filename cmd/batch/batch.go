// Package batch handles directory-level statement processing
package batch

import (
	"context"

	"banktocfo/cfopack/cmd/root"
	"banktocfo/cfopack/internal/batch"
	"banktocfo/cfopack/internal/report"

	"github.com/spf13/cobra"
)

var (
	inputDir   string
	ledgerFile string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Combine a directory of statements into one CFO pack",
	Long: `Parse every CSV and PDF statement in a directory, merge and
deduplicate the transactions, and write a single workbook covering the whole
period. Useful for turning several months of exports into one report.`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "", "Directory containing statement files")
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "Also write the merged transactions to this CSV file")
	if err := Cmd.MarkFlagRequired("dir"); err != nil {
		root.Log.WithError(err).Warn("Failed to mark flag required")
	}
}

func batchFunc(cmd *cobra.Command, args []string) {
	output := root.SharedFlags.Output
	if output == "" {
		output = "CFO_Pack.xlsx"
	}

	processor := batch.NewProcessor(root.NewRouter(), root.NewCategorizer())
	result, err := processor.ProcessDirectory(context.Background(), inputDir)
	if err != nil {
		root.Log.Fatalf("Error processing statement directory: %v", err)
	}
	for _, skipped := range result.Skipped {
		root.Log.Warnf("Skipped unparseable statement: %s", skipped)
	}

	if err := report.NewWorkbookGenerator().Generate(result.Transactions, output); err != nil {
		root.Log.Fatalf("Error generating workbook: %v", err)
	}

	if ledgerFile != "" {
		if err := report.WriteLedgerCSV(result.Transactions, ledgerFile); err != nil {
			root.Log.Fatalf("Error writing ledger CSV: %v", err)
		}
	}

	root.Log.Infof("CFO pack written with %d transactions from %d statements", len(result.Transactions), len(result.Processed))
}
