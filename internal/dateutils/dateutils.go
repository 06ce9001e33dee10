// Package dateutils provides the date parsing and formatting helpers shared
// by the statement parsers.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts used across the application.
const (
	LayoutISO       = "2006-01-02"
	LayoutUS        = "01/02/2006"
	LayoutUSShort   = "1/2/2006"
	LayoutUSDashed  = "01-02-2006"
	LayoutFull      = "2006-01-02 15:04:05"
	LayoutWithMonth = "Jan 2, 2006"
)

// CommonFormats lists the layouts tried when parsing a statement date, most
// common first. US bank exports lead because every built-in CSV schema is a
// US one.
var CommonFormats = []string{
	LayoutISO,
	LayoutUS,
	LayoutUSShort,
	LayoutUSDashed,
	LayoutFull,
	LayoutWithMonth,
	"January 2, 2006",
	"2006/01/02",
	"02.01.2006",
	"2-Jan-2006",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using each common format in turn.
// Returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISO normalizes a date string from any supported layout into YYYY-MM-DD.
func ToISO(dateStr string) (string, error) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.Format(LayoutISO), nil
}

// IsISO reports whether the string is already a valid YYYY-MM-DD date.
func IsISO(dateStr string) bool {
	_, err := time.Parse(LayoutISO, dateStr)
	return err == nil
}

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespaceRe.ReplaceAllString(dateStr, " ")
}

// MonthKey truncates an ISO date string to its YYYY-MM month key.
func MonthKey(isoDate string) string {
	if len(isoDate) < 7 {
		return isoDate
	}
	return isoDate[:7]
}
