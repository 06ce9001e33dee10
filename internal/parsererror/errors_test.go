package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{FilePath: "statement.docx", Reason: "unrecognized extension '.docx'"}
	assert.Contains(t, err.Error(), "statement.docx")
	assert.Contains(t, err.Error(), ".docx")

	var target *UnsupportedFormatError
	assert.True(t, errors.As(fmt.Errorf("parse: %w", err), &target))
}

func TestEmptyResultError(t *testing.T) {
	err := &EmptyResultError{FilePath: "empty.csv"}
	assert.Contains(t, err.Error(), "no valid transactions")

	var target *EmptyResultError
	assert.True(t, errors.As(fmt.Errorf("parse: %w", err), &target))
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("bad amount")
	err := &ParseError{Parser: "CSV", Field: "amount", Value: "abc", Err: cause}

	assert.Contains(t, err.Error(), "amount")
	assert.ErrorIs(t, err, cause)
}

func TestExtractionErrorUnwrap(t *testing.T) {
	cause := errors.New("model timeout")
	err := &ExtractionError{Page: 3, Err: cause}

	assert.Contains(t, err.Error(), "page 3")
	assert.ErrorIs(t, err, cause)
}
