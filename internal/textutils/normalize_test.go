package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "debit card purchase with reference codes",
			input:    "DEBIT CARD PURCHASE 121424 5811121424 CHIPOTLE",
			expected: "chipotle",
		},
		{
			name:     "pos debit with reference codes",
			input:    "POS DEBIT 122024 5411122024 TARGET",
			expected: "target",
		},
		{
			name:     "asterisk runs removed",
			input:    "AMZN Mktp US*RT4G55TZ0",
			expected: "amzn mktp usrt4g55tz0",
		},
		{
			name:     "short numbers survive",
			input:    "7-ELEVEN 32145",
			expected: "7-eleven 32145",
		},
		{
			name:     "long numbers survive when over ten digits",
			input:    "CHECK 12345678901",
			expected: "check 12345678901",
		},
		{
			name:     "whitespace collapsed and trimmed",
			input:    "  WIRE TRANSFER CREDIT   ACME    LLC  ",
			expected: "acme llc",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "pure noise reduces to empty",
			input:    "POS DEBIT 123456 ***",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDescription(tt.input))
		})
	}
}

func TestNormalizeDescriptionIdempotent(t *testing.T) {
	inputs := []string{
		"DEBIT CARD PURCHASE 121424 5811121424 CHIPOTLE",
		"ACH WITHDRAWAL 987654 STATE FARM INSURANCE",
		"AMZN Mktp US*RT4G55TZ0",
		"recurring deb card purch NETFLIX.COM",
		"plain merchant name",
		"   ",
		"7-ELEVEN 32145 AUSTIN TX",
		"USAA CREDIT 00123456 PAYROLL DEPOSIT",
	}

	for _, input := range inputs {
		once := NormalizeDescription(input)
		twice := NormalizeDescription(once)
		assert.Equal(t, once, twice, "normalize(normalize(%q)) must equal normalize(%q)", input, input)
	}
}
