package statement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoRecords is returned when there is nothing to convert.
	ErrNoRecords = errors.New("no transactions to convert")

	// ErrFinalized is returned when an assembler is used after Finalize.
	ErrFinalized = errors.New("statement already finalized")
)

// RecordError annotates a per-record failure with the record identifier.
type RecordError struct {
	Record string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s: %v", e.Record, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// BalanceMismatchError reports that the opening balance plus all entries
// does not reproduce the closing balance recorded by the bank.
type BalanceMismatchError struct {
	Computed decimal.Decimal
	Recorded decimal.Decimal
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("closing balance mismatch: computed %s, recorded %s",
		e.Computed.StringFixed(2), e.Recorded.StringFixed(2))
}
