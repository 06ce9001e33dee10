// Package csvparser parses CSV bank statements. It detects which of the
// built-in bank export schemas a file uses from its column headers, then maps
// rows into canonical transactions, skipping rows that fail to convert.
package csvparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/models"
	"banktocfo/cfopack/internal/parsererror"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

var log = config.Logger

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Schema identifies one of the built-in bank CSV layouts.
type Schema string

const (
	// SchemaChase: Posting Date, Description, Amount, Type, Balance.
	SchemaChase Schema = "chase"
	// SchemaBofA: Posted Date, Payee, Address, Amount.
	SchemaBofA Schema = "bofa"
	// SchemaWellsFargo: Date, Amount, optional Description or Memo.
	SchemaWellsFargo Schema = "wells_fargo"
	// SchemaGeneric: Date, Description, Amount.
	SchemaGeneric Schema = "generic"
	// SchemaUnknown: headers match no known layout.
	SchemaUnknown Schema = "unknown"
)

// DetectSchema decides which schema applies to the given column headers.
// Rules are checked in a fixed priority order and the first satisfied rule
// wins. The Wells Fargo rule (date+amount) is broader than the generic rule
// (date+description+amount) and is checked first, so the generic rule is
// effectively unreachable today; the order is kept as-is deliberately,
// changing it changes which converter handles three-column files.
func DetectSchema(headers []string) Schema {
	cols := make(map[string]bool, len(headers))
	for _, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(h))] = true
	}

	switch {
	case cols["posting date"] && cols["description"]:
		return SchemaChase
	case cols["posted date"] && cols["payee"]:
		return SchemaBofA
	case cols["date"] && cols["amount"]:
		return SchemaWellsFargo
	case cols["date"] && cols["description"] && cols["amount"]:
		return SchemaGeneric
	default:
		return SchemaUnknown
	}
}

// Parse reads a CSV statement and returns its transactions. The file name is
// used only for error reporting. Unknown schemas and mechanically broken
// files are job-fatal; individual bad rows are skipped and logged.
func Parse(r io.Reader, fileName string) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV input: %w", err)
	}

	data, err = decodeText(data)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "CSV",
			Field:  "encoding",
			Value:  fileName,
			Err:    err,
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "CSV",
			Field:  "records",
			Value:  fileName,
			Err:    err,
		}
	}
	if len(records) == 0 {
		return nil, &parsererror.ParseError{
			Parser: "CSV",
			Field:  "header",
			Value:  fileName,
			Err:    fmt.Errorf("file has no header row"),
		}
	}

	headers := records[0]
	schema := DetectSchema(headers)
	if schema == SchemaUnknown {
		return nil, &parsererror.UnsupportedFormatError{
			FilePath: fileName,
			Reason:   fmt.Sprintf("CSV headers %v match no known bank schema", headers),
		}
	}

	log.WithFields(logrus.Fields{
		"file":   fileName,
		"schema": schema,
	}).Info("Detected CSV bank schema")

	transactions := convertRows(schema, headers, records[1:])

	log.WithFields(logrus.Fields{
		"file":  fileName,
		"count": len(transactions),
	}).Info("Parsed CSV statement")

	return transactions, nil
}

// decodeText returns UTF-8 text for the given bytes, retrying with Latin-1
// when the input is not valid UTF-8. Legacy bank exports still ship in
// single-byte encodings.
func decodeText(data []byte) ([]byte, error) {
	// Strip a UTF-8 BOM if present; some exports lead with one.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("input is neither valid UTF-8 nor Latin-1: %w", err)
	}
	return decoded, nil
}
