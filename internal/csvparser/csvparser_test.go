package csvparser

import (
	"errors"
	"strings"
	"testing"

	"banktocfo/cfopack/internal/models"
	"banktocfo/cfopack/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSchema(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected Schema
	}{
		{
			name:     "chase layout",
			headers:  []string{"Posting Date", "Description", "Amount", "Type", "Balance"},
			expected: SchemaChase,
		},
		{
			name:     "chase wins even when generic rules also match",
			headers:  []string{"Posting Date", "Description", "Amount"},
			expected: SchemaChase,
		},
		{
			name:     "bofa layout",
			headers:  []string{"Posted Date", "Payee", "Address", "Amount"},
			expected: SchemaBofA,
		},
		{
			name:     "date and amount without description",
			headers:  []string{"Date", "Amount"},
			expected: SchemaWellsFargo,
		},
		{
			name:     "wells fargo rule shadows the generic three-column rule",
			headers:  []string{"Date", "Description", "Amount"},
			expected: SchemaWellsFargo,
		},
		{
			name:     "case and whitespace insensitive",
			headers:  []string{" posting date ", "DESCRIPTION", "Amount"},
			expected: SchemaChase,
		},
		{
			name:     "unknown headers",
			headers:  []string{"Foo", "Bar"},
			expected: SchemaUnknown,
		},
		{
			name:     "empty header set",
			headers:  nil,
			expected: SchemaUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectSchema(tt.headers))
		})
	}
}

func TestParseChase(t *testing.T) {
	input := `Posting Date,Description,Amount,Type,Balance
01/15/2024,DEBIT CARD PURCHASE CHIPOTLE,-12.50,DEBIT,1000.00
01/16/2024,DIRECT DEPOSIT PAYROLL,2500.00,ACH_CREDIT,3487.50
`

	transactions, err := Parse(strings.NewReader(input), "chase.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "2024-01-15", transactions[0].Date)
	assert.Equal(t, "DEBIT CARD PURCHASE CHIPOTLE", transactions[0].Description)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("-12.50")))
	// Source Type column carries through but the sign stays authoritative.
	assert.Equal(t, "DEBIT", transactions[0].Type)
	assert.Equal(t, "ACH_CREDIT", transactions[1].Type)
}

func TestParseBofA(t *testing.T) {
	input := `Posted Date,Payee,Address,Amount
01/15/2024,TARGET STORE 001,"AUSTIN, TX",-54.12
01/20/2024,EMPLOYER INC,"DALLAS, TX",1800.00
`

	transactions, err := Parse(strings.NewReader(input), "bofa.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "TARGET STORE 001", transactions[0].Description)
	assert.Equal(t, models.TypeDebit, transactions[0].Type)
	assert.Equal(t, models.TypeCredit, transactions[1].Type)
}

func TestParseWellsFargoMemoFallback(t *testing.T) {
	input := `Date,Amount,Memo
2024-01-15,-25.00,COFFEE SHOP
2024-01-16,100.00,
`

	transactions, err := Parse(strings.NewReader(input), "wf.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "COFFEE SHOP", transactions[0].Description)
	// Description is optional in this schema.
	assert.Equal(t, "", transactions[1].Description)
}

func TestParseRowSkipResilience(t *testing.T) {
	input := `Date,Description,Amount
2024-01-15,GOOD ROW ONE,-10.00
2024-01-16,BAD AMOUNT,abc
2024-01-17,GOOD ROW TWO,20.00
`

	transactions, err := Parse(strings.NewReader(input), "rows.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "GOOD ROW ONE", transactions[0].Description)
	assert.Equal(t, "GOOD ROW TWO", transactions[1].Description)
}

func TestParseSkipsBadDates(t *testing.T) {
	input := `Date,Description,Amount
not-a-date,BAD DATE,-10.00
2024-01-17,GOOD,20.00
`

	transactions, err := Parse(strings.NewReader(input), "dates.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "GOOD", transactions[0].Description)
}

func TestParseDollarAndThousandsSeparators(t *testing.T) {
	input := `Date,Description,Amount
2024-01-15,BIG INVOICE,"$1,500.00"
`

	transactions, err := Parse(strings.NewReader(input), "fmt.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("1500.00")))
}

func TestParseUnknownSchema(t *testing.T) {
	input := `Foo,Bar
1,2
`

	_, err := Parse(strings.NewReader(input), "mystery.csv")

	var unsupported *parsererror.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Contains(t, unsupported.Error(), "mystery.csv")
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""), "empty.csv")

	var parseErr *parsererror.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseLatin1Fallback(t *testing.T) {
	// "CAFÉ" with É encoded as Latin-1 0xC9, invalid as UTF-8.
	input := []byte("Date,Description,Amount\n2024-01-15,CAF\xc9 MOZART,-9.50\n")

	transactions, err := Parse(strings.NewReader(string(input)), "latin1.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "CAFÉ MOZART", transactions[0].Description)
}

func TestParseUTF8BOM(t *testing.T) {
	input := "\xef\xbb\xbfDate,Description,Amount\n2024-01-15,SHOP,-1.00\n"

	transactions, err := Parse(strings.NewReader(input), "bom.csv")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
}
