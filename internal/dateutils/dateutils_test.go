package dateutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // ISO rendering of the parsed date
		wantErr  bool
	}{
		{name: "ISO", input: "2024-01-15", expected: "2024-01-15"},
		{name: "US slashed", input: "01/15/2024", expected: "2024-01-15"},
		{name: "US single digit", input: "1/5/2024", expected: "2024-01-05"},
		{name: "US dashed", input: "01-15-2024", expected: "2024-01-15"},
		{name: "month name", input: "Jan 15, 2024", expected: "2024-01-15"},
		{name: "extra whitespace", input: "  2024-01-15 ", expected: "2024-01-15"},
		{name: "garbage", input: "not a date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, _, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed.Format(LayoutISO))
		})
	}
}

func TestToISO(t *testing.T) {
	iso, err := ToISO("12/31/2023")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", iso)

	_, err = ToISO("31/31/2023")
	assert.Error(t, err)
}

func TestIsISO(t *testing.T) {
	assert.True(t, IsISO("2024-02-29"))
	assert.False(t, IsISO("2023-02-29"))
	assert.False(t, IsISO("01/15/2024"))
	assert.False(t, IsISO(""))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-01", MonthKey("2024-01-15"))
	assert.Equal(t, "2024", MonthKey("2024"))
}
