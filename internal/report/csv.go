package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"banktocfo/cfopack/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// WriteLedgerCSV writes the categorized transactions to a CSV file, creating
// parent directories as needed. Amounts are fixed to two decimal places so
// the ledger round-trips cleanly through spreadsheet tools.
func WriteLedgerCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing ledger CSV")

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return MarshalLedger(transactions, file)
}

// MarshalLedger writes the transactions as CSV to w.
func MarshalLedger(transactions []models.Transaction, w io.Writer) error {
	rows := make([]models.Transaction, len(transactions))
	copy(rows, transactions)
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
	}

	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
