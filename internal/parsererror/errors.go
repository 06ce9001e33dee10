// Package parsererror defines the typed errors surfaced by the statement
// parsing pipeline. Failures that make a whole job meaningless (unknown
// format, zero transactions) get their own types so the service layer can
// map them to user-facing conditions; per-row and per-page failures are
// contained inside the parsers and never reach here.
package parsererror

import "fmt"

// UnsupportedFormatError reports a file the pipeline cannot handle: an
// unrecognized extension, or a CSV whose headers match no known bank schema.
type UnsupportedFormatError struct {
	FilePath string
	Reason   string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported statement format for '%s': %s", e.FilePath, e.Reason)
}

// EmptyResultError reports a parse that succeeded mechanically but produced
// zero transactions. Distinct from a technical parse error so callers can
// surface a "no valid transactions found" condition.
type EmptyResultError struct {
	FilePath string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no valid transactions found in '%s'", e.FilePath)
}

// ParseError wraps a failure inside one parser with enough context to debug
// which field of which input broke.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a failure of the external vision collaborator for
// one page. Non-fatal at the page level; the PDF parser logs it and treats
// the page as empty.
type ExtractionError struct {
	Page int
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for page %d: %v", e.Page, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
