package importer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingHeader = errors.New("missing header row")
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyValue    = errors.New("required value is empty")
	ErrTotalMismatch = errors.New("total amount does not equal amount minus fee")
)

// MalformedInputError reports a ledger row or field that cannot be parsed.
type MalformedInputError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("malformed input at line %d", e.Line)
	if e.Column != "" {
		msg += fmt.Sprintf(", column %q", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(", value %q", e.Value)
	}
	return msg + ": " + e.Err.Error()
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
