// Package textutils provides text normalization utilities for transaction
// descriptions.
package textutils

import (
	"regexp"
	"strings"
)

// boilerplatePhrases are the bank-specific prefixes stripped before keyword
// matching. The set is configuration, not derivation; extend it when a new
// bank export shows up with its own noise.
var boilerplatePhrases = []string{
	"debit card purchase",
	"pos debit",
	"recurring deb card purch",
	"ach withdrawal",
	"ach dep",
	"payment receipt credit",
	"usaa credit",
	"usaa debit",
	"wire transfer credit",
}

var (
	boilerplateRe = regexp.MustCompile(strings.Join(boilerplatePhrases, "|"))
	refCodeRe     = regexp.MustCompile(`\b\d{6,10}\b`)
	asteriskRe    = regexp.MustCompile(`\*+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// NormalizeDescription reduces a raw statement description to a stable
// lowercase matching key: boilerplate phrases, 6-10 digit reference codes and
// asterisk runs are removed, then whitespace is collapsed and trimmed.
//
// The transform is idempotent: applying it to its own output is a no-op.
//
//	"DEBIT CARD PURCHASE 121424 5811121424 CHIPOTLE" -> "chipotle"
//	"POS DEBIT 122024 5411122024 TARGET"             -> "target"
func NormalizeDescription(description string) string {
	desc := strings.ToLower(description)
	desc = boilerplateRe.ReplaceAllString(desc, "")
	desc = refCodeRe.ReplaceAllString(desc, "")
	desc = asteriskRe.ReplaceAllString(desc, "")
	desc = whitespaceRe.ReplaceAllString(desc, " ")
	return strings.TrimSpace(desc)
}
